package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/internal/service/dataset"
)

func TestHealthy(t *testing.T) {
	ok := dataset.Report{Files: []dataset.FileStatus{{Name: "a.json", Loaded: true}}}
	if !healthy(ok) {
		t.Fatal("expected healthy report")
	}

	failed := dataset.Report{Files: []dataset.FileStatus{{Name: "a.json", Error: "missing"}}}
	if healthy(failed) {
		t.Fatal("expected failed file to be unhealthy")
	}

	collided := dataset.Report{
		Files:      []dataset.FileStatus{{Name: "a.json", Loaded: true}},
		Collisions: []f1.Collision{{Collection: "teams", Key: "red-bull"}},
	}
	if healthy(collided) {
		t.Fatal("expected collision to be unhealthy")
	}
}

func TestRenderListsCollisions(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, dataset.Report{
		Files:      []dataset.FileStatus{{Name: "F1_Teams.json", Loaded: true}},
		Counts:     f1.Counts{Teams: 2},
		Collisions: []f1.Collision{{Collection: "teams", Key: "red-bull", Kept: "Red-Bull", Dropped: "Red Bull"}},
	})

	out := buf.String()
	for _, want := range []string{"F1_Teams.json", "red-bull", "Red-Bull", "constructors"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
