package downloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortIDIsDeterministic(t *testing.T) {
	a := ShortID("yt-dlp exit code 1 for https://x: some error")
	b := ShortID("yt-dlp exit code 1 for https://x: some error")
	c := ShortID("a different error")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, shortIDLen)
}

func TestErrorShortIDMatchesMessageHash(t *testing.T) {
	err := &Error{Message: "boom"}

	assert.Equal(t, ShortID("boom"), err.ShortID())
	assert.Equal(t, "boom", err.Error())
}

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))

	return p
}

func TestParseResultSingleVideo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "abc123.mp4", 2048)

	raw := []byte(`{
		"id": "abc123",
		"ext": "mp4",
		"title": "A Video",
		"uploader": "someone",
		"description": "desc",
		"duration": 12.7,
		"width": 1920,
		"height": 1080,
		"requested_downloads": [{"filepath": "` + path + `", "vcodec": "h264", "acodec": "aac", "tbr": 1500.5}]
	}`)

	res, err := parseResult(dir, raw, 10)
	require.NoError(t, err)

	assert.Equal(t, "abc123", res.ContentID)
	assert.Equal(t, "A Video", res.Title)
	assert.Equal(t, "someone", res.Uploader)
	require.Len(t, res.Files, 1)

	f := res.Files[0]
	assert.Equal(t, path, f.Path)
	assert.Equal(t, MediaTypeVideo, f.MediaType)
	assert.Equal(t, int64(2048), f.FileSize)
	assert.Equal(t, 12, f.Duration)
	assert.Equal(t, 1920, f.Width)
	assert.Equal(t, 1500, f.Bitrate)
	assert.Equal(t, "h264", f.VideoCodec)
	assert.Equal(t, "aac", f.AudioCodec)
}

func TestParseResultAudioOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "track1.mp3", 512)

	raw := []byte(`{
		"id": "track1",
		"ext": "mp3",
		"title": "A Track",
		"requested_downloads": [{"filepath": "` + path + `", "vcodec": "none", "acodec": "mp3", "tbr": 128}]
	}`)

	res, err := parseResult(dir, raw, 10)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	assert.Equal(t, MediaTypeAudio, res.Files[0].MediaType)
	assert.Empty(t, res.Files[0].VideoCodec)
	assert.Equal(t, "mp3", res.Files[0].AudioCodec)
}

func TestParseResultPlaylistCapsEntries(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []string{"p1", "p2", "p3"} {
		writeFile(t, dir, id+".mp4", 100)
	}

	raw := []byte(`{
		"_type": "playlist",
		"id": "album9",
		"title": "An Album",
		"entries": [
			{"id": "p1", "ext": "mp4", "requested_downloads": [{"vcodec": "h264", "acodec": "aac"}]},
			{"id": "p2", "ext": "mp4", "requested_downloads": [{"vcodec": "h264", "acodec": "aac"}]},
			{"id": "p3", "ext": "mp4", "requested_downloads": [{"vcodec": "h264", "acodec": "aac"}]}
		]
	}`)

	res, err := parseResult(dir, raw, 2)
	require.NoError(t, err)

	assert.Equal(t, "album9", res.ContentID)
	require.Len(t, res.Files, 2)
	assert.Equal(t, filepath.Join(dir, "p1.mp4"), res.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "p2.mp4"), res.Files[1].Path)
}

func TestParseResultFlagsAgeRestrictedContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "r1.mp4", 100)

	raw := []byte(`{"id": "r1", "ext": "mp4", "title": "restricted", "age_limit": 18}`)

	res, err := parseResult(dir, raw, 1)
	require.NoError(t, err)
	assert.True(t, res.AgeRestricted)

	raw = []byte(`{"id": "r1", "ext": "mp4", "title": "open", "age_limit": 0}`)

	res, err = parseResult(dir, raw, 1)
	require.NoError(t, err)
	assert.False(t, res.AgeRestricted)
}

func TestParseResultFallsBackToGeneratedContentID(t *testing.T) {
	raw := []byte(`{"title": "untitled"}`)

	res, err := parseResult(t.TempDir(), raw, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ContentID)
}

func TestParseResultRejectsGarbage(t *testing.T) {
	_, err := parseResult(t.TempDir(), []byte("not json"), 1)
	require.Error(t, err)
}

func TestLocateFilePrefersReportedThenRemuxed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vid.mp4", 10)

	// Reported ext webm does not exist; remuxed mp4 does.
	assert.Equal(t, filepath.Join(dir, "vid.mp4"), locateFile(dir, "vid", "webm"))
}
