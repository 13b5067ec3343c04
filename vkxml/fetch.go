package vkxml

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
)

// Source is a registry document resolved to a local file.
type Source struct {
	Path    string
	Input   string
	Fetched bool
	cleanup func()
}

// Cleanup removes a fetched copy. Safe to call more than once.
func (s *Source) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Resolve turns a path or URL into a local registry file. Local paths are
// used in place; anything go-getter detects as remote (https, git, s3,
// github.com/...//xml/vk.xml) is downloaded to a temporary directory.
func Resolve(ctx context.Context, input string) (*Source, error) {
	log := logger.ComponentLogger("vkxml")

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect registry source %s", input)
	}
	log.Debugw("registry source detected", "input", input, "detected", detected)

	u, err := url.Parse(detected)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse registry source %s", detected)
	}
	if u.Scheme == "file" || u.Scheme == "" {
		local := input
		if u.Scheme == "file" {
			local = u.Path
		}
		if strings.HasPrefix(local, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(err, "failed to expand home directory")
			}
			local = filepath.Join(home, local[2:])
		}
		if _, err := os.Stat(local); err != nil {
			return nil, errors.WithHint(
				errors.NewConfigurationError("registry %s does not exist", local),
				"pass the path of vk.xml with --registry")
		}
		return &Source{Path: local, Input: input}, nil
	}

	return fetch(ctx, input, detected)
}

func fetch(ctx context.Context, input, detected string) (*Source, error) {
	log := logger.ComponentLogger("vkxml")

	dir, err := os.MkdirTemp("", "vkgen-registry-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	dst := filepath.Join(dir, "vk.xml")

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getters(),
	}
	log.Infow("fetching registry", "input", input, logger.FieldPath, dst)
	if err := client.Get(); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "failed to fetch registry %s", input)
	}

	return &Source{
		Path:    dst,
		Input:   input,
		Fetched: true,
		cleanup: func() {
			log.Debugw("removing fetched registry", logger.FieldPath, dir)
			os.RemoveAll(dir)
		},
	}, nil
}
