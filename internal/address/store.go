// Package address maintains the per-user book of saved delivery addresses
// and the currently selected one, persisted in the device key-value store.
//
// Address data is a convenience cache, not a system of record: once an order
// is placed the server-side snapshot is authoritative. Storage failures are
// therefore swallowed and reported to callers as "no data".
package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/freshmandiapp/freshmandi/internal/kv"
)

// GuestKey partitions data for sessions with no authenticated user.
const GuestKey = "guest"

// Address is a saved delivery address.
type Address struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AltPhone    string `json:"altPhone,omitempty"`
	AddressLine string `json:"addressLine"`
	Pincode     string `json:"pincode"`
	City        string `json:"city"`
	State       string `json:"state"`
	Landmark    string `json:"landmark,omitempty"`
}

// Identity returns the string used for duplicate detection. An explicit ID
// wins; otherwise identity is derived from phone, pincode and name. Two
// people sharing all three collide, which matches how the book has always
// behaved.
func (a Address) Identity() string {
	if a.ID != "" {
		return a.ID
	}
	return fmt.Sprintf("%s-%s-%s", a.Phone, a.Pincode, a.Name)
}

// Store reads and writes the address book for each user key.
type Store struct {
	kv     kv.Provider
	logger *slog.Logger
}

func NewStore(provider kv.Provider, logger *slog.Logger) *Store {
	return &Store{
		kv:     provider,
		logger: logger,
	}
}

// List returns the stored addresses, most recent first. Missing, corrupt or
// unreadable data yields an empty list, never an error.
func (s *Store) List(ctx context.Context, userKey string) []Address {
	raw, err := s.kv.Get(ctx, listKey(userKey))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logDegraded("read address list", userKey, err)
		}
		return []Address{}
	}

	var list []Address
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logDegraded("decode address list", userKey, err)
		return []Address{}
	}
	if list == nil {
		list = []Address{}
	}
	return list
}

// Add assigns an ID when the caller did not supply one and merges the address
// into the book. The address is returned even if persisting failed; the
// screen flow continues regardless. Field validation is the form layer's job.
func (s *Store) Add(ctx context.Context, userKey string, draft Address) Address {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	s.Merge(ctx, userKey, draft)
	return draft
}

// Merge removes any stored entry with the same identity, prepends the new
// address and persists the result. Merging the same address twice leaves the
// book unchanged.
func (s *Store) Merge(ctx context.Context, userKey string, addr Address) []Address {
	existing := s.List(ctx, userKey)
	identity := addr.Identity()

	merged := make([]Address, 0, len(existing)+1)
	merged = append(merged, addr)
	for _, entry := range existing {
		if entry.Identity() == identity {
			continue
		}
		merged = append(merged, entry)
	}

	s.persistList(ctx, userKey, merged)
	return merged
}

// Delete removes the entry at the given position. An out-of-range index is a
// no-op, not an error.
func (s *Store) Delete(ctx context.Context, userKey string, index int) []Address {
	list := s.List(ctx, userKey)
	if index < 0 || index >= len(list) {
		return list
	}

	list = append(list[:index], list[index+1:]...)
	s.persistList(ctx, userKey, list)
	return list
}

// Select persists the address as the current selection for the user. The
// address does not have to exist in the book.
func (s *Store) Select(ctx context.Context, userKey string, addr Address) Address {
	addr.ID = addr.Identity()

	raw, err := json.Marshal(addr)
	if err != nil {
		s.logDegraded("encode selected address", userKey, err)
		return addr
	}
	if err := s.kv.Set(ctx, selectedKey(userKey), string(raw)); err != nil {
		s.logDegraded("write selected address", userKey, err)
	}
	return addr
}

// Selected returns the previously selected address, or nil when there is
// none or it cannot be read. The selection may dangle after a delete; the
// caller degrades to "no address selected".
func (s *Store) Selected(ctx context.Context, userKey string) *Address {
	raw, err := s.kv.Get(ctx, selectedKey(userKey))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logDegraded("read selected address", userKey, err)
		}
		return nil
	}

	var addr Address
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		s.logDegraded("decode selected address", userKey, err)
		return nil
	}
	return &addr
}

func (s *Store) persistList(ctx context.Context, userKey string, list []Address) {
	raw, err := json.Marshal(list)
	if err != nil {
		s.logDegraded("encode address list", userKey, err)
		return
	}
	if err := s.kv.Set(ctx, listKey(userKey), string(raw)); err != nil {
		s.logDegraded("write address list", userKey, err)
	}
}

func (s *Store) logDegraded(op, userKey string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("address store degraded to empty", "op", op, "user_key", normalizeUserKey(userKey), "error", err)
}

func listKey(userKey string) string {
	return fmt.Sprintf("userAddresses_%s", normalizeUserKey(userKey))
}

func selectedKey(userKey string) string {
	return fmt.Sprintf("selectedAddress_%s", normalizeUserKey(userKey))
}

func normalizeUserKey(userKey string) string {
	if strings.TrimSpace(userKey) == "" {
		return GuestKey
	}
	return userKey
}
