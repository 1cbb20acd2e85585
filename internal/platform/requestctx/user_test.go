package requestctx

import (
	"context"
	"testing"

	"github.com/sovna/taskhub/internal/storage"
)

func TestUserFromContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		u := storage.User{ID: 7, Username: "alice", Email: "a@x.com"}
		ctx := WithUser(context.Background(), u)
		got, ok := UserFromContext(ctx)
		if !ok {
			t.Fatal("expected user in context")
		}
		if got.ID != 7 || got.Username != "alice" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("absent", func(t *testing.T) {
		if _, ok := UserFromContext(context.Background()); ok {
			t.Error("expected no user in empty context")
		}
	})

	t.Run("nil context", func(t *testing.T) {
		if _, ok := UserFromContext(nil); ok {
			t.Error("expected no user for nil context")
		}
	})
}
