package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"caredesk/internal/perception"
)

func TestBuildHandler_DemoSamples(t *testing.T) {
	logger = zap.NewNop()
	noPolish = true
	t.Cleanup(func() { noPolish = false })

	handler, err := buildHandler(context.Background())
	require.NoError(t, err)

	wantIntents := []perception.Intent{
		perception.IntentRefundRequest, // "refund me" wins the priority order
		perception.IntentBillingIssue,
		perception.IntentMissingPart,
		perception.IntentCancellationThreat,
		perception.IntentDefectReport,
		perception.IntentPraise,
	}

	require.Len(t, demoSamples, len(wantIntents))
	for i, sample := range demoSamples {
		reply := handler.Handle(context.Background(), sample)
		require.NotNil(t, reply)
		assert.Equal(t, wantIntents[i], reply.Result.Perception.Intent, "sample %d", i+1)
		assert.NotEmpty(t, reply.Text)
		assert.False(t, reply.Polished)
	}
}

func TestBuildHandler_ConfigError(t *testing.T) {
	logger = zap.NewNop()
	configPath = t.TempDir()
	t.Cleanup(func() { configPath = "" })

	_, err := buildHandler(context.Background())
	assert.Error(t, err)
}
