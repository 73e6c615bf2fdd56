package sendreminder

import (
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSendFansOutToGrantedSurfaces(t *testing.T) {
	granted := reminder.NewTestSender()
	denied := reminder.NewTestSender()
	denied.SendPermission = reminder.PermissionDenied
	unsupported := reminder.NewTestSender()
	unsupported.SendPermission = reminder.PermissionUnsupported
	service := New(logging.NewFakeLogger(), granted, denied, unsupported)

	result, err := service.Run(context.Background(), Input{Event: reminder.TestEvent(1, Now)})

	require.Nil(t, err)
	assert.True(t, result.Delivered)
	assert.Len(t, granted.Sent, 1)
	assert.Empty(t, denied.Sent)
	assert.Empty(t, unsupported.Sent)
}

func TestSendFailureDegradesSilently(t *testing.T) {
	failing := reminder.NewTestSender()
	failing.SendError = errors.New("smtp unreachable")
	working := reminder.NewTestSender()
	service := New(logging.NewFakeLogger(), failing, working)

	result, err := service.Run(context.Background(), Input{Event: reminder.TestEvent(1, Now)})

	require.Nil(t, err)
	assert.True(t, result.Delivered)
	assert.Len(t, working.Sent, 1)
}

func TestSendWithoutSurfaces(t *testing.T) {
	service := New(logging.NewFakeLogger())

	result, err := service.Run(context.Background(), Input{Event: reminder.TestEvent(1, Now)})

	require.Nil(t, err)
	assert.False(t, result.Delivered)
}
