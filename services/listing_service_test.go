package services

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"testing"
	"time"
)

// cannedCache always hits, so the database must never be consulted.
type cannedCache struct {
	payload string
}

func (c *cannedCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) (string, error)) (string, error) {
	return c.payload, nil
}

func (c *cannedCache) Invalidate(ctx context.Context, key string) error { return nil }

func TestPublicListingProjectsOnlyVisibleFields(t *testing.T) {
	moderatedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM ` + "`submissions`"),
			columns: []string{"submission_id", "kind", "name", "email", "phone", "project_title", "stage", "status", "visible", "image_id", "moderated_at"},
			rows: [][]driver.Value{
				{int64(10), "innovator", "Ada", "ada@example.com", "+66812345678", "Solar Dryer", "prototype", "approved", true, int64(1), moderatedAt},
				{int64(11), "collaborator", "Grace", "grace@example.com", "+66899999999", "Water Sensors", "launched", "approved", true, nil, moderatedAt},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM ` + "`images`"),
			columns: []string{"image_id", "file_key", "file_url"},
			rows:    [][]driver.Value{{int64(1), "innovator/images/k-img", "http://store/bucket/innovator/images/k-img"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewListingService(db, &fakeCache{})

	payload, err := svc.PublicListing(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Success bool                     `json:"success"`
		Total   int                      `json:"total"`
		Data    []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if !body.Success || body.Total != 2 || len(body.Data) != 2 {
		t.Fatalf("unexpected envelope: success=%v total=%d items=%d", body.Success, body.Total, len(body.Data))
	}

	first := body.Data[0]
	if first["name"] != "Ada" || first["project_title"] != "Solar Dryer" {
		t.Fatalf("unexpected first item: %v", first)
	}
	if first["image_url"] != "http://store/bucket/innovator/images/k-img" {
		t.Fatalf("expected image url, got %v", first["image_url"])
	}
	for _, item := range body.Data {
		if _, ok := item["email"]; ok {
			t.Fatalf("email must not be exposed: %v", item)
		}
		if _, ok := item["phone"]; ok {
			t.Fatalf("phone must not be exposed: %v", item)
		}
	}
	if _, ok := body.Data[1]["image_url"]; ok {
		t.Fatalf("item without image must omit image_url: %v", body.Data[1])
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestPublicListingServedFromCacheSkipsDatabase(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewListingService(db, &cannedCache{payload: `{"success":true,"data":[],"total":0}`})

	payload, err := svc.PublicListing(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != `{"success":true,"data":[],"total":0}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
