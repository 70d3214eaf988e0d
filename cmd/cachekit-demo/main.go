// Command cachekit-demo wires a memory backend, a fixed TTL policy, and
// the read-through-with-refill strategy through cachekit.Engine against
// an in-memory "repository" of example.User values.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ckit-dev/cachekit"
	"github.com/ckit-dev/cachekit/backend/memory"
	"github.com/ckit-dev/cachekit/example"
)

func main() {
	ctx := context.Background()

	alice := example.User{ID: uuid.New(), Name: "Alice"}
	repo := cachekit.RepositoryFunc[example.User](func(ctx context.Context, id string) (*example.User, error) {
		if id == alice.ID.String() {
			u := alice
			return &u, nil
		}
		return nil, nil
	})

	backend := memory.New(time.Minute)
	defer backend.Close()

	policy := cachekit.NewFixedPolicy(time.Hour)
	engine := cachekit.NewEngine[example.User](example.UserEntity{}, backend, policy, nil, nil, cachekit.DefaultConfig())

	feeder := cachekit.NewValueFeeder[example.User](alice.ID.String())
	if err := engine.Execute(ctx, feeder, repo, cachekit.StrategyReadThrough, cachekit.OperationConfig{}); err != nil {
		panic(err)
	}
	fmt.Printf("cold lookup: %+v\n", feeder.Result)

	feeder2 := cachekit.NewValueFeeder[example.User](alice.ID.String())
	if err := engine.Execute(ctx, feeder2, repo, cachekit.StrategyReadThrough, cachekit.OperationConfig{}); err != nil {
		panic(err)
	}
	fmt.Printf("warm lookup: %+v\n", feeder2.Result)
}
