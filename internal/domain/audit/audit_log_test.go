package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLog(t *testing.T) {
	t.Run("creates entry with actor", func(t *testing.T) {
		actor := uuid.New()
		recordID := uuid.New()

		log, err := NewLog(&actor, "invoices", recordID, ChangeTypeCreate, "Created invoice")

		require.NoError(t, err)
		assert.Equal(t, &actor, log.ChangedBy)
		assert.Equal(t, "invoices", log.TableName)
		assert.Equal(t, recordID, log.RecordID)
		assert.Equal(t, ChangeTypeCreate, log.ChangeType)
		assert.WithinDuration(t, time.Now().UTC(), log.Timestamp, 2*time.Second)
	})

	t.Run("allows nil actor for system changes", func(t *testing.T) {
		log, err := NewLog(nil, "clients", uuid.New(), ChangeTypeDelete, "Purged by retention job")

		require.NoError(t, err)
		assert.Nil(t, log.ChangedBy)
	})

	t.Run("rejects empty table name", func(t *testing.T) {
		_, err := NewLog(nil, "", uuid.New(), ChangeTypeCreate, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown change type", func(t *testing.T) {
		_, err := NewLog(nil, "invoices", uuid.New(), ChangeType("TRUNCATE"), "")
		assert.Error(t, err)
	})
}
