package index

import (
	"context"
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"
)

func TestHTTPChannelReleases(t *testing.T) {
	channel, err := NewHTTPChannel("https://channel.mdpkg.dev/stable")
	if err != nil {
		t.Fatal(err)
	}

	httpmock.ActivateNonDefault(channel.Client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET", "https://channel.mdpkg.dev/stable/numgo/index.json",
		httpmock.NewStringResponder(200, `{
			"name": "numgo",
			"releases": [
				{"version": "1.22.4", "url": "https://channel.mdpkg.dev/numgo-1.22.4.tar.gz", "sha256": "abc", "size": 1024}
			]
		}`),
	)

	releases, err := channel.Releases(context.Background(), "numgo")
	if err != nil {
		t.Fatal(err)
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if releases[0].Version != "1.22.4" || releases[0].Size != 1024 {
		t.Errorf("unexpected release: %+v", releases[0])
	}
}

func TestHTTPChannelNotFound(t *testing.T) {
	channel, err := NewHTTPChannel("https://channel.mdpkg.dev/stable")
	if err != nil {
		t.Fatal(err)
	}

	httpmock.ActivateNonDefault(channel.Client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET", "https://channel.mdpkg.dev/stable/ghost/index.json",
		httpmock.NewStringResponder(404, "not found"),
	)

	_, err = channel.Releases(context.Background(), "ghost")
	var notFound *ErrPackageNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestHTTPChannelServerError(t *testing.T) {
	channel, err := NewHTTPChannel("https://channel.mdpkg.dev/stable")
	if err != nil {
		t.Fatal(err)
	}

	httpmock.ActivateNonDefault(channel.Client.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET", "https://channel.mdpkg.dev/stable/numgo/index.json",
		httpmock.NewStringResponder(500, "boom"),
	)

	if _, err := channel.Releases(context.Background(), "numgo"); err == nil {
		t.Error("expected an error for a 500 response")
	}
}

func TestDirChannel(t *testing.T) {
	channel := &DirChannel{Dir: "testdata"}

	releases, err := channel.Releases(context.Background(), "numgo")
	if err != nil {
		t.Fatal(err)
	}
	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}

	_, err = channel.Releases(context.Background(), "ghost")
	var notFound *ErrPackageNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}
