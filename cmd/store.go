package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fractionalhq/enrich-cli/internal/enrich"
	"github.com/fractionalhq/enrich-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
}

// printSummary writes the run counts to stdout as a single JSON object so
// cron wrappers can parse the result.
func printSummary(sum enrich.Summary) {
	out, _ := json.Marshal(sum)
	fmt.Println(string(out))
}
