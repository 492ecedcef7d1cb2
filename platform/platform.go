// Package platform defines the host audio service a cable delegates device
// and routing operations to, and an in-memory implementation of it.
//
// The transport core never calls into this package; only the cable session
// object does, and only on behalf of its caller.
package platform

import (
	"context"
	"errors"
)

var (
	// ErrUnknownApplication indicates an application id the host does not know.
	ErrUnknownApplication = errors.New("unknown application")

	// ErrUnknownOutput indicates an output name the host does not know.
	ErrUnknownOutput = errors.New("unknown output")

	// ErrNotRouted indicates an unroute request for an application that was
	// not routed.
	ErrNotRouted = errors.New("application is not routed")

	// ErrSameOutput indicates a duplication of an output onto itself.
	ErrSameOutput = errors.New("source and target output are the same")

	// ErrDuplicationExists indicates the duplication is already active.
	ErrDuplicationExists = errors.New("duplication already active")
)

// Application is a process producing audio on the host.
type Application struct {
	ID    string
	Name  string
	PID   uint32 // 0 when unknown
	AppID string // desktop application id, empty when unknown
}

// Output is an audio output device (sink) on the host.
type Output struct {
	Name        string
	Description string
	IsDefault   bool
}

// Duplication mirrors everything played on Source to Target.
type Duplication struct {
	Source string
	Target string
}

// Service is the host audio service.
type Service interface {
	// ListOutputs returns the available output devices.
	ListOutputs(ctx context.Context) ([]Output, error)

	// ListApplications returns the applications currently producing audio.
	ListApplications(ctx context.Context) ([]Application, error)

	// RouteApplication sends the application's audio into the cable.
	RouteApplication(ctx context.Context, appID string) error

	// RouteSystemAudio sends all system audio into the cable.
	RouteSystemAudio(ctx context.Context) error

	// UnrouteApplication restores the application's original output.
	UnrouteApplication(ctx context.Context, appID string) error

	// DuplicateOutput mirrors source onto target.
	DuplicateOutput(ctx context.Context, source, target string) error

	// StopAllDuplications ends every active duplication.
	StopAllDuplications(ctx context.Context) error
}
