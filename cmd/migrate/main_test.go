package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"filmorate/internal/database"
)

type fakeMigrator struct {
	upErr   error
	version uint
	dirty   bool
	status  *database.Status
	steps   int
	forced  int
	calls   []string
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeMigrator) Down() error {
	f.calls = append(f.calls, "down")
	return nil
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, nil
}

func (f *fakeMigrator) Force(version int) error {
	f.calls = append(f.calls, "force")
	f.forced = version
	return nil
}

func (f *fakeMigrator) Status(_ context.Context) (*database.Status, error) {
	return f.status, nil
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"default is up", nil, options{action: actionUp}},
		{"explicit up", []string{"-up"}, options{action: actionUp}},
		{"down", []string{"-down"}, options{action: actionDown}},
		{"steps back", []string{"-steps", "-1"}, options{action: actionSteps, steps: -1}},
		{"version", []string{"-version"}, options{action: actionVersion}},
		{"force", []string{"-force", "2"}, options{action: actionForce, version: 2}},
		{"force zero", []string{"-force", "0"}, options{action: actionForce, version: 0}},
		{"status", []string{"-status"}, options{action: actionStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptions(tt.args, io.Discard)
			require.NoError(t, err)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestParseOptions_Rejects(t *testing.T) {
	for _, args := range [][]string{
		{"-up", "-down"},
		{"-status", "-version"},
		{"-steps", "0"},
		{"-force", "-3"},
		{"-steps", "abc"},
		{"extra"},
	} {
		_, err := parseOptions(args, io.Discard)
		require.Error(t, err, "%v", args)
	}
}

func TestExecute_UpWithoutChanges(t *testing.T) {
	m := &fakeMigrator{upErr: database.ErrNoChange}
	var out bytes.Buffer

	require.NoError(t, execute(context.Background(), m, &options{action: actionUp}, &out))
	require.Equal(t, []string{"up"}, m.calls)
	require.Contains(t, out.String(), "уже актуальна")
}

func TestExecute_UpFailure(t *testing.T) {
	m := &fakeMigrator{upErr: errors.New("boom")}
	err := execute(context.Background(), m, &options{action: actionUp}, io.Discard)
	require.EqualError(t, err, "boom")
}

func TestExecute_StepsAndForce(t *testing.T) {
	m := &fakeMigrator{}
	require.NoError(t, execute(context.Background(), m, &options{action: actionSteps, steps: -2}, io.Discard))
	require.Equal(t, -2, m.steps)

	require.NoError(t, execute(context.Background(), m, &options{action: actionForce, version: 1}, io.Discard))
	require.Equal(t, 1, m.forced)
	require.Equal(t, []string{"steps", "force"}, m.calls)
}

func TestExecute_VersionDirty(t *testing.T) {
	m := &fakeMigrator{version: 2, dirty: true}
	var out bytes.Buffer

	err := execute(context.Background(), m, &options{action: actionVersion}, &out)
	require.ErrorIs(t, err, errDirty)
	require.Contains(t, out.String(), "Версия: 2")
}

func TestExecute_Status(t *testing.T) {
	m := &fakeMigrator{status: &database.Status{
		Version: 3,
		Catalog: map[string]int64{"mpa": 5, "genres": 6},
	}}
	var out bytes.Buffer

	require.NoError(t, execute(context.Background(), m, &options{action: actionStatus}, &out))
	require.Equal(t, "Версия: 3\nСправочник genres: 6 записей\nСправочник mpa: 5 записей\n", out.String())
}

func TestExecute_StatusEmptyCatalog(t *testing.T) {
	m := &fakeMigrator{status: &database.Status{
		Version: 3,
		Catalog: map[string]int64{"mpa": 0, "genres": 6},
	}}

	err := execute(context.Background(), m, &options{action: actionStatus}, io.Discard)
	require.ErrorContains(t, err, "mpa")
}
