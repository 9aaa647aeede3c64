package services

import (
	"testing"
	"time"

	"rentledger/constants"
	"rentledger/errors"
	"rentledger/types"
)

func TestActorFromToken(t *testing.T) {
	tok, err := IssueToken(types.NewActor(42, "Hoa", constants.RoleSuperAdmin), "s3cret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	actor, err := ActorFromToken(tok, "s3cret")
	if err != nil {
		t.Fatalf("ActorFromToken: %v", err)
	}
	if actor.ID != 42 || actor.Name != "Hoa" || actor.Role != constants.RoleSuperAdmin || !actor.CanForceOverlap {
		t.Errorf("unexpected actor %+v", actor)
	}

	if _, err := ActorFromToken(tok, "other"); !errors.HasCode(err, errors.ErrCodeInvalidToken) {
		t.Errorf("expected invalid token for wrong secret, got %v", err)
	}

	expired, _ := IssueToken(types.NewActor(1, "", constants.RoleAdmin), "s3cret", -time.Minute)
	if _, err := ActorFromToken(expired, "s3cret"); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
