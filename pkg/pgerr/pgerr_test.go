package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pq.Error{Code: CodeUniqueViolation, Constraint: "appointments_active_slot_uidx"}
	wrapped := fmt.Errorf("insert: %w", unique)

	assert.True(t, IsUniqueViolation(wrapped))
	assert.Equal(t, "appointments_active_slot_uidx", Constraint(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))

	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: CodeForeignKeyViolation}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: CodeCheckViolation}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeDeadlockDetected}))
}

func TestNonPostgresError(t *testing.T) {
	err := errors.New("plain")

	assert.Equal(t, "", Code(err))
	assert.Equal(t, "", Constraint(err))
	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsSerializationFailure(nil))
}
