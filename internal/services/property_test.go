package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories/memory"

	"pgregory.net/rapid"
)

// Property: no two stored clients ever share an email, whatever sequence of
// creates and updates is attempted.
func TestProperty_EmailUniqueness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := memory.NewClientStore()
		svc := NewClientService(store)

		emails := []string{"a@club.io", "b@club.io", "c@club.io"}
		pickEmail := rapid.SampledFrom(emails)

		n := rapid.IntRange(1, 20).Draw(t, "ops")
		var created []*models.Client
		for i := 0; i < n; i++ {
			email := pickEmail.Draw(t, fmt.Sprintf("email_%d", i))
			if len(created) > 0 && rapid.Bool().Draw(t, fmt.Sprintf("update_%d", i)) {
				target := created[rapid.IntRange(0, len(created)-1).Draw(t, fmt.Sprintf("target_%d", i))]
				_, _ = svc.UpdateClient(ctx, target.ID, ClientDTO{FullName: target.FullName, Email: &email})
				continue
			}
			c, err := svc.CreateClient(ctx, ClientDTO{FullName: fmt.Sprintf("Client %d", i), Email: &email})
			if err == nil {
				created = append(created, c)
			}
		}

		all, total, err := store.FindAll(ctx, 1, 0, nil)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if total > len(emails) {
			t.Fatalf("stored %d clients with only %d distinct emails", total, len(emails))
		}
		seen := map[string]bool{}
		for _, c := range all {
			if c.Email == nil {
				continue
			}
			if seen[*c.Email] {
				t.Fatalf("email %s stored twice", *c.Email)
			}
			seen[*c.Email] = true
		}
	})
}

// Property: a stored membership is active exactly when its range covers now
// and its owner is not blocked.
func TestProperty_MembershipActivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		clients := memory.NewClientStore()
		clientSvc := NewClientService(clients)
		svc := NewMembershipService(memory.NewMembershipStore(clients), clientSvc)
		svc.(*membershipService).now = func() time.Time { return fixedNow }

		blocked := rapid.Bool().Draw(t, "blocked")
		client, err := clientSvc.CreateClient(ctx, ClientDTO{FullName: "Owner", IsBlocked: blocked})
		if err != nil {
			t.Fatalf("CreateClient: %v", err)
		}

		startOffset := time.Duration(rapid.IntRange(-72, 72).Draw(t, "start_hours")) * time.Hour
		length := time.Duration(rapid.IntRange(1, 96).Draw(t, "length_hours")) * time.Hour
		start := fixedNow.Add(startOffset)
		end := start.Add(length)

		m, err := svc.CreateMembership(ctx, MembershipDTO{
			ClientID:  client.ID,
			Type:      rapid.SampledFrom([]models.MembershipType{models.MembershipStandard, models.MembershipPremium, models.MembershipUnlimited}).Draw(t, "type"),
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			t.Fatalf("CreateMembership: %v", err)
		}

		active, err := svc.IsActiveMembership(ctx, m.ID)
		if err != nil {
			t.Fatalf("IsActiveMembership: %v", err)
		}
		want := !fixedNow.Before(start) && fixedNow.Before(end) && !blocked
		if active != want {
			t.Fatalf("active = %v, want %v (start %s end %s blocked %v)", active, want, start, end, blocked)
		}
	})
}
