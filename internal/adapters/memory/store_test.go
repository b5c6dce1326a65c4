package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/germwalk/internal/adapters/memory"
	"github.com/aretw0/germwalk/pkg/domain"
	"github.com/aretw0/germwalk/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.New()
	ports.RunTrajectoryStoreContract(t, store)
}

func TestMemoryStore_AppendUnknownRun(t *testing.T) {
	store := memory.New()
	err := store.AppendTick(context.Background(), "missing", 0, nil)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}
