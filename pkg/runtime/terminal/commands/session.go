package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/analytix/pkg/models/domain"
	fileexport "github.com/de-tools/analytix/pkg/runtime/export"
	"github.com/de-tools/analytix/pkg/services/report"
)

// Recorder keeps retrieved reports.
type Recorder interface {
	Record(ctx context.Context, profile string, req *domain.Request, r *domain.Report) (*domain.ReportEntry, error)
}

// S3ClientFactory builds an S3 client for the named AWS profile.
type S3ClientFactory func(ctx context.Context, awsProfile string) (fileexport.PutObjectAPI, error)

// Backend holds the services a command works with for one profile.
type Backend struct {
	Profile     *domain.ConfigProfile
	Service     report.Service
	Credentials report.Credentials
	History     Recorder
	S3          S3ClientFactory
	Closer      io.Closer
}

func (b *Backend) Close() error {
	if b.Closer == nil {
		return nil
	}
	return b.Closer.Close()
}

// Opener resolves profile from the profiles file at configPath.
type Opener func(ctx context.Context, configPath, profile string) (*Backend, error)

// Session carries the persistent flags shared by every command.
type Session struct {
	ConfigPath string
	Profile    string
	Open       Opener
}

func (s *Session) open(ctx context.Context) (*Backend, error) {
	if s.Open == nil {
		return nil, fmt.Errorf("no backend configured")
	}
	b, err := s.Open(ctx, s.ConfigPath, s.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile %s: %w", s.Profile, err)
	}
	return b, nil
}
