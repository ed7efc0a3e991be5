package lifecycle

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/extpack-labs/extpack/internal/archive"
	"github.com/extpack-labs/extpack/internal/faults"
	"github.com/extpack-labs/extpack/internal/folders"
	"github.com/extpack-labs/extpack/internal/manifest"
)

// Step tags the phase reported through Hooks.OnStatus.
type Step int

const (
	// StepDownloading precedes every file download.
	StepDownloading Step = iota
	// StepExtracting precedes every archive extraction.
	StepExtracting
)

func (s Step) String() string {
	if s == StepExtracting {
		return "extracting"
	}
	return "downloading"
}

// Hooks carries the install callbacks. Any field may be nil. OnComplete
// is invoked exactly once per call, with nil on success; all hooks run
// on the invoking goroutine.
type Hooks struct {
	OnProgress func(fraction float64)
	OnStatus   func(step Step, resource string)
	OnComplete func(err error)
}

func (h Hooks) progress(f float64) {
	if h.OnProgress != nil {
		h.OnProgress(f)
	}
}

func (h Hooks) status(s Step, resource string) {
	if h.OnStatus != nil {
		h.OnStatus(s, resource)
	}
}

// task is one download (and possible extraction) of the install plan.
type task struct {
	uri  string
	dest string
}

// InstallOrUpdate installs the given release of ext from cat, replacing
// any currently installed release. The previous installation is deleted
// before any download starts, so a failure part-way leaves the
// extension uninstalled rather than reverted; that contract is
// deliberate. Cancellation is cooperative through ctx and checked at
// download and extraction chunk boundaries.
func (m *Manager) InstallOrUpdate(ctx context.Context, cat manifest.Catalog, ext manifest.Extension,
	release manifest.Release, withOptional bool, hooks Hooks) error {

	err := m.installOrUpdate(ctx, cat, ext, release, withOptional, hooks)
	if err != nil {
		m.logger.Error().Err(err).Str("catalog", cat.Name).Str("extension", ext.Name).
			Str("release", release.Name).Msg("install failed")
	}
	if hooks.OnComplete != nil {
		hooks.OnComplete(err)
	}
	return err
}

func (m *Manager) installOrUpdate(ctx context.Context, cat manifest.Catalog, ext manifest.Extension,
	release manifest.Release, withOptional bool, hooks Hooks) error {

	// Validation happens before any I/O.
	if _, ok := m.findCatalog(cat.Name); !ok {
		return faults.Validation("catalog %q is not a saved catalog", cat.Name)
	}
	if ext.FindRelease(release.Name) == nil {
		return faults.Validation("release %q not found for extension %q", release.Name, ext.Name)
	}

	// Drop the old installation first and publish "not installed", so a
	// failure below cannot be mistaken for the previous version.
	extDir := m.folders.ExtensionDir(cat, ext)
	if _, err := os.Lstat(extDir); err == nil {
		if err := m.folders.DeleteTree(extDir); err != nil {
			return faults.IO(err, "removing previous installation of %s", ext.Name)
		}
	}
	m.setState(cat, ext, nil)

	tasks, err := m.buildPlan(cat, ext, release, withOptional)
	if err != nil {
		m.setState(cat, ext, nil)
		return err
	}

	if err := m.runPlan(ctx, tasks, hooks); err != nil {
		m.setState(cat, ext, nil)
		return err
	}

	m.setState(cat, ext, &InstalledExtension{Release: release.Name, OptionalDependencies: withOptional})
	m.managedJars.Replace(m.folders.ManagedJars())

	// Making the new jars loadable is secondary; the installation is
	// already recorded.
	for _, t := range tasks {
		if strings.EqualFold(filepath.Ext(t.dest), ".jar") {
			m.loader.AddJar(t.dest)
		}
	}

	hooks.progress(1)
	m.logger.Info().Str("catalog", cat.Name).Str("extension", ext.Name).
		Str("release", release.Name).Msg("extension installed")
	return nil
}

// buildPlan maps every source URI of the release to its destination
// path, materializing destination directories: main archive, required
// dependencies, optional dependencies (only when requested), and
// documentation archives, in that order.
func (m *Manager) buildPlan(cat manifest.Catalog, ext manifest.Extension,
	release manifest.Release, withOptional bool) ([]task, error) {

	groups := []struct {
		kind folders.Kind
		uris []string
	}{
		{folders.MainJar, []string{release.MainURL}},
		{folders.RequiredDeps, release.RequiredDependencyURLs},
		{folders.OptionalDeps, release.OptionalDependencyURLs},
		{folders.Docs, release.JavadocsURLs},
	}

	var tasks []task
	for _, g := range groups {
		if g.kind == folders.OptionalDeps && !withOptional {
			continue
		}
		if len(g.uris) == 0 {
			continue
		}
		dir, err := m.folders.ReleaseDir(cat, ext, release.Name, g.kind)
		if err != nil {
			return nil, faults.IO(err, "preparing %s folder", g.kind.Folder())
		}
		for _, uri := range g.uris {
			name, err := remoteFileName(uri)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task{uri: uri, dest: filepath.Join(dir, name)})
		}
	}
	return tasks, nil
}

// runPlan downloads every task in order, extracting zip archives into
// their parent directory right after download. Task i of n owns the
// progress interval [i/n, (i+1)/n]; when the task needs extraction the
// download gets the first half of the interval and the extraction the
// second, otherwise the download gets all of it.
func (m *Manager) runPlan(ctx context.Context, tasks []task, hooks Hooks) error {
	n := float64(len(tasks))
	for i, t := range tasks {
		base := float64(i) / n
		span := 1 / n
		name := filepath.Base(t.dest)
		needsExtract := archive.IsZip(t.dest)

		downloadSpan := span
		if needsExtract {
			downloadSpan = span / 2
		}

		hooks.status(StepDownloading, name)
		err := m.dl.Fetch(ctx, t.uri, t.dest, func(f float64) {
			hooks.progress(base + f*downloadSpan)
		})
		if err != nil {
			return err
		}

		if needsExtract {
			hooks.status(StepExtracting, name)
			extractBase := base + downloadSpan
			err := archive.Extract(ctx, t.dest, filepath.Dir(t.dest), func(f float64) {
				hooks.progress(extractBase + f*downloadSpan)
			})
			if err != nil {
				return err
			}
		}
		hooks.progress(base + span)
	}
	return nil
}

// RemoveExtension deletes the extension's directory tree and clears its
// cached installed state. Jars that were loaded stay loaded; only their
// tracking is dropped.
func (m *Manager) RemoveExtension(cat manifest.Catalog, ext manifest.Extension) error {
	extDir := m.folders.ExtensionDir(cat, ext)

	var jars []string
	_ = filepath.WalkDir(extDir, func(p string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".jar") {
			jars = append(jars, p)
		}
		return nil
	})

	if err := m.folders.DeleteTree(extDir); err != nil {
		return faults.IO(err, "removing extension %s", ext.Name)
	}
	for _, jar := range jars {
		m.loader.RemoveJar(jar)
	}
	m.setState(cat, ext, nil)
	m.managedJars.Replace(m.folders.ManagedJars())
	m.logger.Info().Str("catalog", cat.Name).Str("extension", ext.Name).Msg("extension removed")
	return nil
}

// remoteFileName extracts the file name component of a download URI.
func remoteFileName(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", faults.Validation("invalid download URI %q", uri)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", faults.Validation("download URI %q has no file name", uri)
	}
	return name, nil
}
