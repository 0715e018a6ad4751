package orders

import (
	"fmt"
	"strings"
)

// Status is the closed set of states an order renders as.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusDispatched Status = "DISPATCHED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Normalize maps the server's free-form status string onto the display
// taxonomy. Matching is case-insensitive and whitespace-trimmed; SHIPPED and
// DISPATCH are aliases for DISPATCHED. Anything unrecognized, including an
// empty status, renders as PENDING. That default can mask a genuinely new
// server status as pending (and thus cancellable); it is the long-standing
// behavior and stays until the server commits to a status contract.
func Normalize(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DISPATCHED", "SHIPPED", "DISPATCH":
		return StatusDispatched
	case "DELIVERED":
		return StatusDelivered
	case "CANCELLED":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Presentation describes how an order is shown on the order screens.
type Presentation struct {
	Title       string
	ColorTag    string
	Subtitle    string
	IconTag     string
	Cancellable bool
}

// Describe derives the presentation from the normalized status and the
// order's timestamp fields. Pure function of its input.
func Describe(o Order) Presentation {
	switch Normalize(o.Status) {
	case StatusDelivered:
		return Presentation{
			Title:    "Order Delivered",
			ColorTag: "green",
			IconTag:  "check-circle",
			Subtitle: deliveredSubtitle(o),
		}
	case StatusCancelled:
		return Presentation{
			Title:    "Order Cancelled",
			ColorTag: "red",
			IconTag:  "x-circle",
			Subtitle: "This order was cancelled",
		}
	case StatusDispatched:
		return Presentation{
			Title:    "Order Dispatched",
			ColorTag: "blue",
			IconTag:  "truck",
			Subtitle: dispatchedSubtitle(o),
		}
	default:
		return Presentation{
			Title:       "Order Pending",
			ColorTag:    "orange",
			IconTag:     "clock",
			Subtitle:    pendingSubtitle(o),
			Cancellable: true,
		}
	}
}

// CanCancel reports whether the client may offer the cancel action. The
// server stays authoritative on whether a cancel is actually accepted.
func CanCancel(o Order) bool {
	return Normalize(o.Status) == StatusPending
}

func deliveredSubtitle(o Order) string {
	when := firstNonEmpty(o.DeliveredAt, o.UpdatedAt, o.CreatedAt)
	if when == "" {
		return "Delivered"
	}
	return fmt.Sprintf("Delivered on %s", FormatDate(when))
}

func dispatchedSubtitle(o Order) string {
	if o.ExpectedDelivery != "" {
		return fmt.Sprintf("Arriving by %s", FormatDate(o.ExpectedDelivery))
	}
	when := firstNonEmpty(o.DispatchedAt, o.UpdatedAt, o.CreatedAt)
	if when == "" {
		return "On the way"
	}
	return fmt.Sprintf("Dispatched on %s", FormatDate(when))
}

func pendingSubtitle(o Order) string {
	if o.ExpectedDelivery != "" {
		return fmt.Sprintf("Expected delivery %s", FormatDate(o.ExpectedDelivery))
	}
	if o.CreatedAt == "" {
		return "Order placed"
	}
	return fmt.Sprintf("Placed on %s", FormatDate(o.CreatedAt))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
