package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/queuekit/queuekit/job"
	"github.com/queuekit/queuekit/queue"
	"github.com/queuekit/queuekit/registry"
)

// registerHandlers installs the built-in job handlers served by the daemon.
func registerHandlers(reg *registry.Registry) error {
	handlers := map[string]queue.HandlerFunc{
		"data-processing": dataProcessingHandler,
		"export":          exportHandler,
		"notification":    notificationHandler,
	}

	for name, handler := range handlers {
		if err := reg.Register(name, handler); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

// dataProcessingHandler transforms the payload's items list and reports how
// many were processed.
func dataProcessingHandler(ctx context.Context, j *job.Job) (interface{}, error) {
	data, ok := j.Data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("data-processing: expected object payload")
	}

	items, ok := data["items"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("data-processing: payload has no items list")
	}

	results := make([]interface{}, 0, len(items))
	for _, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		results = append(results, map[string]interface{}{
			"item":   item,
			"status": "processed",
		})
	}

	return map[string]interface{}{
		"processed": len(items),
		"results":   results,
	}, nil
}

// exportHandler serializes the payload and reports the export size.
func exportHandler(_ context.Context, j *job.Job) (interface{}, error) {
	raw, err := json.Marshal(j.Data)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return map[string]interface{}{
		"format":     "json",
		"size":       len(raw),
		"exportedAt": time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// notificationHandler pretends to deliver a message to a recipient. A
// missing recipient is an error, which exercises the retry path.
func notificationHandler(_ context.Context, j *job.Job) (interface{}, error) {
	data, _ := j.Data.(map[string]interface{})

	recipient, _ := data["recipient"].(string)
	if recipient == "" {
		return nil, fmt.Errorf("notification: missing recipient")
	}

	message, _ := data["message"].(string)

	return map[string]interface{}{
		"delivered": true,
		"recipient": recipient,
		"message":   message,
	}, nil
}
