package ai

import "context"

type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
