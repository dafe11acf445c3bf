package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"

	"campusvote/internal/platform/config"
)

type fakeAdmin struct {
	resp kadm.CreateTopicResponses
	err  error
}

func (f fakeAdmin) CreateTopics(context.Context, int32, int16, map[string]*string, ...string) (kadm.CreateTopicResponses, error) {
	return f.resp, f.err
}

func TestEnsureTopic(t *testing.T) {
	ctx := context.Background()

	err := EnsureTopic(ctx, fakeAdmin{resp: kadm.CreateTopicResponses{
		"audit": {Topic: "audit"},
	}}, "audit", 1, 1)
	assert.NoError(t, err)

	err = EnsureTopic(ctx, fakeAdmin{resp: kadm.CreateTopicResponses{
		"audit": {Topic: "audit", Err: kerr.TopicAlreadyExists},
	}}, "audit", 1, 1)
	assert.NoError(t, err)

	err = EnsureTopic(ctx, fakeAdmin{resp: kadm.CreateTopicResponses{
		"audit": {Topic: "audit", Err: kerr.TopicAuthorizationFailed},
	}}, "audit", 1, 1)
	assert.Error(t, err)

	err = EnsureTopic(ctx, fakeAdmin{err: errors.New("no brokers")}, "audit", 1, 1)
	assert.Error(t, err)
}

func TestNew_NoBrokersDisablesStreaming(t *testing.T) {
	client, err := New(context.Background(), config.KafkaConfig{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
