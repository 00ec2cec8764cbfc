package console

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/stretchr/testify/assert"
)

func TestRobot_PromptUsesTable(t *testing.T) {
	var out bytes.Buffer
	r := NewRobot(&out, lang.NewTable("en", map[string]string{lang.KeyAskCancel: "Cancel?"}))

	r.Prompt(context.Background(), lang.KeyAskCancel)
	r.Prompt(context.Background(), lang.KeyGoodbye)

	assert.Contains(t, out.String(), `"Cancel?"`)
	assert.Contains(t, out.String(), "[Missing translation for goodbye]")
}

func TestRobot_Limbs(t *testing.T) {
	r := NewRobot(&bytes.Buffer{}, nil)
	r.RaiseLimb(context.Background(), domain.SideRight)
	assert.Equal(t, domain.SideRight, r.Raised())
	r.ResetPosture(context.Background())
	assert.Equal(t, domain.Side(""), r.Raised())
}

func TestRobot_MoveTowardReachesTarget(t *testing.T) {
	r := NewRobot(&bytes.Buffer{}, nil, WithSpeed(100))
	target := domain.Coordinates{X: 1, Y: 1}

	ok := r.MoveToward(context.Background(), target, 0)
	assert.True(t, ok)
	assert.Equal(t, target, r.Position())
}

func TestRobot_MoveTowardCancelled(t *testing.T) {
	r := NewRobot(&bytes.Buffer{}, nil, WithSpeed(1), WithStart(domain.Coordinates{}))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	ok := r.MoveToward(ctx, domain.Coordinates{X: 10}, 0)
	assert.False(t, ok)

	pos := r.HaltMotion(context.Background())
	assert.Greater(t, pos.X, 0.0, "some progress was made")
	assert.Less(t, pos.X, 10.0)
	assert.Equal(t, pos, r.Position())
}

func TestRobot_Failures(t *testing.T) {
	blocked := domain.Coordinates{X: 2}
	r := NewRobot(&bytes.Buffer{}, nil, WithSpeed(0), WithFailures(func(c domain.Coordinates) bool {
		return c == blocked
	}))

	assert.False(t, r.MoveToward(context.Background(), blocked, 0))
	assert.Equal(t, domain.Coordinates{}, r.Position())
	assert.True(t, r.MoveToward(context.Background(), domain.Coordinates{X: 1}, 0))
	assert.Equal(t, domain.Coordinates{X: 1}, r.Position())
}
