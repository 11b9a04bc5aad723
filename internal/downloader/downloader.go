// Package downloader fetches media through the yt-dlp command line tool.
package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrBinaryNotFound indicates yt-dlp is not installed in PATH.
var ErrBinaryNotFound = errors.New("yt-dlp binary not found in PATH")

const (
	binaryName     = "yt-dlp"
	defaultTimeout = 10 * time.Minute

	MediaTypeVideo    = "video"
	MediaTypeAudio    = "audio"
	MediaTypeDocument = "document"
)

// File is one downloaded media file with its format metadata.
type File struct {
	Path       string
	MediaType  string
	FileSize   int64
	Duration   int
	Width      int
	Height     int
	Bitrate    int
	VideoCodec string
	AudioCodec string
}

// Result is the outcome of one fetch: content metadata plus the files
// that were written to the downloads directory.
type Result struct {
	ContentID     string
	Title         string
	Uploader      string
	Description   string
	AgeRestricted bool
	Files         []File
}

type Options struct {
	Dir         string
	MaxFileSize int64
	Proxy       string
	Timeout     time.Duration
}

// Runner invokes yt-dlp as a subprocess, one invocation per URL.
type Runner struct {
	opts   Options
	logger *zerolog.Logger
}

func New(opts Options, logger *zerolog.Logger) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Runner{opts: opts, logger: logger}
}

// CheckBinary verifies the yt-dlp binary is available. Called once at
// startup so a misconfigured host fails fast.
func CheckBinary() error {
	if _, err := exec.LookPath(binaryName); err != nil {
		return ErrBinaryNotFound
	}

	return nil
}

// Fetch downloads the media behind url, capping multi-item posts at
// maxItems files. Failures come back as *Error so callers can derive the
// operator-facing short id.
func (r *Runner) Fetch(ctx context.Context, url string, maxItems int) (*Result, error) {
	if maxItems < 1 {
		maxItems = 1
	}

	if err := os.MkdirAll(r.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	args := r.buildArgs(url, maxItems)
	cmd := exec.CommandContext(ctx, binaryName, args...)

	start := time.Now()

	output, err := cmd.Output()
	if err != nil {
		return nil, r.asError(ctx, url, err)
	}

	r.logger.Debug().Str("url", url).Dur("elapsed", time.Since(start)).Msg("yt-dlp finished")

	res, err := parseResult(r.opts.Dir, output, maxItems)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("parse yt-dlp output for %s: %v", url, err)}
	}

	return res, nil
}

func (r *Runner) buildArgs(url string, maxItems int) []string {
	args := []string{
		"--dump-single-json",
		"--no-simulate",
		"--no-warnings",
		"--quiet",
		"--merge-output-format", "mp4",
		"--socket-timeout", "20",
		"--retries", "3",
		"--fragment-retries", "3",
		"--concurrent-fragments", "4",
		"--playlist-end", strconv.Itoa(maxItems),
		"-o", filepath.Join(r.opts.Dir, "%(id)s.%(ext)s"),
	}

	if r.opts.MaxFileSize > 0 {
		args = append(args, "--max-filesize", strconv.FormatInt(r.opts.MaxFileSize, 10))
	}

	if r.opts.Proxy != "" {
		args = append(args, "--proxy", r.opts.Proxy)
	}

	return append(args, url)
}

func (r *Runner) asError(ctx context.Context, url string, err error) *Error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Error{Message: fmt.Sprintf("yt-dlp exit code %d for %s: %s", exitErr.ExitCode(), url, string(exitErr.Stderr))}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Message: fmt.Sprintf("yt-dlp timed out for %s", url)}
	}

	return &Error{Message: fmt.Sprintf("yt-dlp failed for %s: %v", url, err)}
}

// ytdlpInfo mirrors the subset of yt-dlp's info JSON this bot reads.
type ytdlpInfo struct {
	Type        string      `json:"_type"`
	ID          string      `json:"id"`
	Ext         string      `json:"ext"`
	Title       string      `json:"title"`
	Uploader    string      `json:"uploader"`
	UploaderID  string      `json:"uploader_id"`
	Description string      `json:"description"`
	Duration    float64     `json:"duration"`
	AgeLimit    int         `json:"age_limit"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Entries     []ytdlpInfo `json:"entries"`

	RequestedDownloads []ytdlpFormat `json:"requested_downloads"`
}

type ytdlpFormat struct {
	Filepath   string  `json:"filepath"`
	Ext        string  `json:"ext"`
	VideoCodec string  `json:"vcodec"`
	AudioCodec string  `json:"acodec"`
	Bitrate    float64 `json:"tbr"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FileSize   int64   `json:"filesize"`
}

func parseResult(dir string, raw []byte, maxItems int) (*Result, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, err
	}

	entries := []ytdlpInfo{info}
	if (info.Type == "playlist" || info.Type == "multi_video") && len(info.Entries) > 0 {
		entries = info.Entries
		if len(entries) > maxItems {
			entries = entries[:maxItems]
		}
	}

	res := &Result{
		ContentID:     info.ID,
		Title:         info.Title,
		Uploader:      info.Uploader,
		Description:   info.Description,
		AgeRestricted: info.AgeLimit >= 18 || entries[0].AgeLimit >= 18,
	}

	if res.ContentID == "" {
		res.ContentID = entries[0].ID
	}

	if res.ContentID == "" {
		res.ContentID = uuid.NewString()
	}

	if res.Title == "" {
		res.Title = entries[0].Title
	}

	if res.Uploader == "" {
		res.Uploader = info.UploaderID
	}

	for _, e := range entries {
		res.Files = append(res.Files, entryFile(dir, e))
	}

	return res, nil
}

func entryFile(dir string, e ytdlpInfo) File {
	f := File{
		Duration: int(e.Duration),
		Width:    e.Width,
		Height:   e.Height,
	}

	if len(e.RequestedDownloads) > 0 {
		rd := e.RequestedDownloads[0]
		f.Path = rd.Filepath
		f.VideoCodec = codec(rd.VideoCodec)
		f.AudioCodec = codec(rd.AudioCodec)
		f.Bitrate = int(rd.Bitrate)
		f.FileSize = rd.FileSize

		if rd.Width > 0 {
			f.Width = rd.Width
		}

		if rd.Height > 0 {
			f.Height = rd.Height
		}
	}

	if f.Path == "" {
		f.Path = locateFile(dir, e.ID, e.Ext)
	}

	if st, err := os.Stat(f.Path); err == nil {
		f.FileSize = st.Size()
	}

	switch {
	case f.VideoCodec != "":
		f.MediaType = MediaTypeVideo
	case f.AudioCodec != "":
		f.MediaType = MediaTypeAudio
	default:
		f.MediaType = MediaTypeDocument
	}

	return f
}

// codec normalizes yt-dlp's "none" placeholder to empty.
func codec(c string) string {
	if c == "none" {
		return ""
	}

	return c
}

// locateFile finds the downloaded file for an entry. yt-dlp often remuxes
// to mp4, so the reported ext may not match what landed on disk.
func locateFile(dir, id, ext string) string {
	if ext == "" {
		ext = "mp4"
	}

	p := filepath.Join(dir, id+"."+ext)
	if _, err := os.Stat(p); err == nil {
		return p
	}

	mp4 := filepath.Join(dir, id+".mp4")
	if _, err := os.Stat(mp4); err == nil {
		return mp4
	}

	matches, _ := filepath.Glob(filepath.Join(dir, id+".*"))
	if len(matches) > 0 {
		return matches[0]
	}

	return p
}
