package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"horse-registry/internal/router"
)

func newRegistry(t *testing.T) string {
	t.Helper()
	h, err := router.NewRouter(context.Background(), router.Options{})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL
}

func ctl(t *testing.T, url string, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := run(context.Background(), append([]string{"-url", url}, args...), &out); err != nil {
		t.Fatalf("registryctl %s: %v", strings.Join(args, " "), err)
	}
	return out.Bytes()
}

func TestCreateShowAndList(t *testing.T) {
	url := newRegistry(t)

	var mare, foal struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(ctl(t, url, "create", "-name", "Luna", "-dob", "2010-05-01", "-sex", "female"), &mare)
	if mare.ID == 0 {
		t.Fatalf("mare without id")
	}
	_ = json.Unmarshal(ctl(t, url, "create", "-name", "Comet", "-dob", "2020-07-15", "-sex", "male", "-mother", "1"), &foal)
	if foal.ID == 0 {
		t.Fatalf("foal without id")
	}

	var view struct {
		Horse struct {
			ParentFemale struct {
				Name string `json:"name"`
			} `json:"parentFemale"`
		} `json:"horse"`
		FemaleCandidates int `json:"femaleCandidates"`
	}
	if err := json.Unmarshal(ctl(t, url, "show", "2"), &view); err != nil {
		t.Fatalf("decode show: %v", err)
	}
	if view.Horse.ParentFemale.Name != "Luna" || view.FemaleCandidates != 1 {
		t.Fatalf("unexpected show output: %+v", view)
	}

	var listed []map[string]any
	if err := json.Unmarshal(ctl(t, url, "list", "-sex", "female"), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0]["name"] != "Luna" {
		t.Fatalf("unexpected list output: %v", listed)
	}
}

func TestCreate_RejectsParentOutsideCandidates(t *testing.T) {
	url := newRegistry(t)
	ctl(t, url, "create", "-name", "Thunder", "-dob", "2011-03-02", "-sex", "male")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-url", url, "create", "-name", "Comet", "-dob", "2020-07-15", "-sex", "male", "-mother", "1"}, &out)
	if err == nil || !strings.Contains(err.Error(), "not an eligible candidate") {
		t.Fatalf("expected candidate error, got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-url", "http://localhost:1", "gallop"}, &out); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}
