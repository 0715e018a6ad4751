package main

// FreshMandi client core driver. Every subcommand maps to one screen action
// of the mobile app: login, address book, cart, orders, support chat.

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/freshmandiapp/freshmandi/app"
	"github.com/freshmandiapp/freshmandi/internal/address"
	"github.com/freshmandiapp/freshmandi/internal/auth"
	"github.com/freshmandiapp/freshmandi/internal/cart"
	"github.com/freshmandiapp/freshmandi/internal/form"
	"github.com/freshmandiapp/freshmandi/internal/orders"
)

func main() {
	fallbackLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	application, err := app.New()
	if err != nil {
		fallbackLogger.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	cmd := &cli.Command{
		Name:  "freshmandi",
		Usage: "FreshMandi grocery ordering client",
		Commands: []*cli.Command{
			loginCommand(application),
			logoutCommand(application),
			addressCommand(application),
			cartCommand(application),
			ordersCommand(application),
			supportCommand(application),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		application.Logger.Error("command failed", "error", err)
		application.Close()
		os.Exit(1)
	}
}

func loginCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in with a phone number and one-time password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phone", Usage: "10-digit phone number", Required: true},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			phone := c.String("phone")

			challenge, err := a.Auth.RequestOTP(ctx, phone)
			if err != nil {
				return err
			}
			fmt.Printf("OTP sent to %s. Resend available in %s.\n", phone, challenge.Countdown(time.Now()).Round(time.Second))

			fmt.Print("Enter OTP: ")
			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read otp: %w", err)
			}

			token, err := a.Auth.VerifyOTP(ctx, phone, strings.TrimSpace(code))
			if err != nil {
				return err
			}
			userKey, err := auth.UserKeyFromToken(token)
			if err != nil {
				return err
			}

			a.SessionManager.Save(ctx, auth.Session{UserKey: userKey, Phone: phone, Token: token})
			fmt.Println("Logged in.")
			return nil
		},
	}
}

func logoutCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored login session",
		Action: func(ctx context.Context, c *cli.Command) error {
			a.SessionManager.Clear(ctx)
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func addressCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:    "addresses",
		Aliases: []string{"address"},
		Usage:   "Manage saved delivery addresses",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show saved addresses, most recent first",
				Action: func(ctx context.Context, c *cli.Command) error {
					userKey := a.UserKey(ctx)
					selected := a.Addresses.Selected(ctx, userKey)
					for i, addr := range a.Addresses.List(ctx, userKey) {
						marker := " "
						if selected != nil && selected.Identity() == addr.Identity() {
							marker = "*"
						}
						fmt.Printf("%s %d. %s, %s, %s %s (%s)\n", marker, i+1, addr.Name, addr.AddressLine, addr.City, addr.Pincode, addr.Phone)
					}
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Save a new delivery address",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "phone", Required: true},
					&cli.StringFlag{Name: "alt-phone"},
					&cli.StringFlag{Name: "line", Usage: "street address", Required: true},
					&cli.StringFlag{Name: "pincode", Required: true},
					&cli.StringFlag{Name: "city", Required: true},
					&cli.StringFlag{Name: "state", Required: true},
					&cli.StringFlag{Name: "landmark"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					draft := form.AddressDraft{
						Name:        c.String("name"),
						Phone:       c.String("phone"),
						AltPhone:    c.String("alt-phone"),
						AddressLine: c.String("line"),
						Pincode:     c.String("pincode"),
						City:        c.String("city"),
						State:       c.String("state"),
						Landmark:    c.String("landmark"),
					}
					if err := draft.Validate(); err != nil {
						return err
					}
					saved := a.Addresses.Add(ctx, a.UserKey(ctx), draft.Address())
					fmt.Printf("Saved address %s.\n", saved.ID)
					return nil
				},
			},
			{
				Name:      "select",
				Usage:     "Choose the delivery address by its list position",
				ArgsUsage: "<position>",
				Action: func(ctx context.Context, c *cli.Command) error {
					pos, err := listPosition(c)
					if err != nil {
						return err
					}
					userKey := a.UserKey(ctx)
					list := a.Addresses.List(ctx, userKey)
					if pos < 1 || pos > len(list) {
						return fmt.Errorf("position %d out of range, have %d addresses", pos, len(list))
					}
					a.Addresses.Select(ctx, userKey, list[pos-1])
					fmt.Printf("Delivering to %s, %s.\n", list[pos-1].Name, list[pos-1].Pincode)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Remove the address at the given list position",
				ArgsUsage: "<position>",
				Action: func(ctx context.Context, c *cli.Command) error {
					pos, err := listPosition(c)
					if err != nil {
						return err
					}
					a.Addresses.Delete(ctx, a.UserKey(ctx), pos-1)
					fmt.Println("Address removed.")
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "Write the address book to a YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					list := a.Addresses.List(ctx, a.UserKey(ctx))
					content, err := address.ExportYAML(list)
					if err != nil {
						return err
					}
					if err := os.WriteFile(c.String("file"), content, 0o600); err != nil {
						return fmt.Errorf("write address book: %w", err)
					}
					fmt.Printf("Exported %d addresses.\n", len(list))
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "Merge addresses from a YAML file into the address book",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					content, err := os.ReadFile(c.String("file"))
					if err != nil {
						return fmt.Errorf("read address book: %w", err)
					}
					imported, err := address.ParseYAML(content)
					if err != nil {
						return err
					}
					userKey := a.UserKey(ctx)
					for _, addr := range imported {
						a.Addresses.Add(ctx, userKey, addr)
					}
					fmt.Printf("Imported %d addresses.\n", len(imported))
					return nil
				},
			},
		},
	}
}

func cartCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "Manage the shopping cart",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show cart contents and totals",
				Action: func(ctx context.Context, c *cli.Command) error {
					current := a.Carts.Get(ctx, a.UserKey(ctx))
					for _, item := range current.Items {
						fmt.Printf("%d x %s (%s) @ %s\n", item.Quantity, item.Name, item.Weight, orders.FormatAmount(item.UnitPrice))
					}
					fmt.Printf("Subtotal: %s\n", orders.FormatAmount(current.Subtotal()))
					fmt.Printf("Delivery: %s\n", orders.FormatAmount(current.DeliveryCharge()))
					fmt.Printf("Total:    %s\n", orders.FormatAmount(current.Total()))
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Add an item to the cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sku", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "weight"},
					&cli.StringFlag{Name: "price", Usage: "unit price in rupees", Required: true},
					&cli.IntFlag{Name: "qty", Value: 1},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					price, err := decimal.NewFromString(c.String("price"))
					if err != nil {
						return fmt.Errorf("invalid price %q: %w", c.String("price"), err)
					}
					updated := a.Carts.Add(ctx, a.UserKey(ctx), cart.Item{
						SKU:       c.String("sku"),
						Name:      c.String("name"),
						Weight:    c.String("weight"),
						UnitPrice: price,
						Quantity:  int(c.Int("qty")),
					})
					fmt.Printf("Cart total: %s\n", orders.FormatAmount(updated.Total()))
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove an item from the cart",
				ArgsUsage: "<sku>",
				Action: func(ctx context.Context, c *cli.Command) error {
					sku := c.Args().First()
					if sku == "" {
						return fmt.Errorf("sku argument is required")
					}
					updated := a.Carts.Remove(ctx, a.UserKey(ctx), sku)
					fmt.Printf("Cart total: %s\n", orders.FormatAmount(updated.Total()))
					return nil
				},
			},
			{
				Name:  "checkout",
				Usage: "Place an order for the cart contents at the selected address",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Value: string(orders.ModeRetail), Usage: "retail or wholesale"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					placed, err := a.Checkout.PlaceOrder(ctx, a.UserKey(ctx), orders.Mode(c.String("mode")))
					if err != nil {
						return err
					}
					fmt.Printf("Order %s placed, total %s.\n", placed.ID, orders.FormatAmount(placed.TotalAmount))
					return nil
				},
			},
		},
	}
}

func ordersCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "Track and manage placed orders",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List past orders",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Usage: "retail or wholesale"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					list, err := a.Orders.List(ctx, a.UserKey(ctx), orders.Mode(c.String("mode")))
					if err != nil {
						return err
					}
					for _, o := range list {
						p := orders.Describe(o)
						fmt.Printf("%s  %-18s %s  %s\n", o.ID, p.Title, orders.FormatAmount(o.TotalAmount), p.Subtitle)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show one order in detail",
				ArgsUsage: "<order-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("order id argument is required")
					}
					o, err := a.Orders.Details(ctx, id)
					if err != nil {
						return err
					}
					p := orders.Describe(*o)
					fmt.Printf("%s — %s\n%s\n", o.ID, p.Title, p.Subtitle)
					for _, item := range o.Items {
						fmt.Printf("  %d x %s (%s) @ %s\n", item.Quantity, item.Name, item.Weight, orders.FormatAmount(item.UnitPrice))
					}
					fmt.Printf("Total: %s (delivery %s)\n", orders.FormatAmount(o.TotalAmount), orders.FormatAmount(o.DeliveryCharge))
					if p.Cancellable {
						fmt.Println("This order can still be cancelled.")
					}
					return nil
				},
			},
			{
				Name:      "cancel",
				Usage:     "Cancel an order that has not been dispatched",
				ArgsUsage: "<order-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("order id argument is required")
					}
					o, err := a.Orders.Details(ctx, id)
					if err != nil {
						return err
					}
					if !orders.CanCancel(*o) {
						return fmt.Errorf("order %s is %s and can no longer be cancelled", o.ID, orders.Normalize(o.Status))
					}
					if err := a.Orders.Cancel(ctx, id); err != nil {
						return err
					}
					fmt.Println("Order cancelled.")
					return nil
				},
			},
		},
	}
}

func supportCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "support",
		Usage: "Chat with customer support",
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "Send a message to support",
				ArgsUsage: "<message>",
				Action: func(ctx context.Context, c *cli.Command) error {
					text := strings.Join(c.Args().Slice(), " ")
					if err := a.Support.Send(ctx, a.UserKey(ctx), text); err != nil {
						return err
					}
					fmt.Println("Message sent.")
					return nil
				},
			},
			{
				Name:  "thread",
				Usage: "Show the support conversation",
				Action: func(ctx context.Context, c *cli.Command) error {
					thread, err := a.Support.Thread(ctx, a.UserKey(ctx))
					if err != nil {
						return err
					}
					for _, msg := range thread {
						fmt.Printf("[%s] %s: %s\n", orders.FormatDate(msg.SentAt), msg.From, msg.Text)
					}
					return nil
				},
			},
		},
	}
}

func listPosition(c *cli.Command) (int, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("position argument is required")
	}
	var pos int
	if _, err := fmt.Sscanf(raw, "%d", &pos); err != nil {
		return 0, fmt.Errorf("invalid position %q", raw)
	}
	return pos, nil
}
