package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"bubblemap/internal/bubblemap"
	"bubblemap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

var supportedExt = map[string]bool{
	".geojson": true, ".json": true, ".csv": true, ".kml": true, ".wkt": true, ".shp": true,
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if supportedExt[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// growMsg ends the zero-radius frame that follows a data load.
type growMsg struct{}

func grow() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg { return growMsg{} })
}

// onlyPoints reports whether g carries nothing but points, which makes a
// file data rather than an outline.
func onlyPoints(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Point, orb.MultiPoint:
		return true
	case orb.Collection:
		for _, c := range g {
			if !onlyPoints(c) {
				return false
			}
		}
		return len(g) > 0
	}
	return false
}

// loadPath opens a file from the sidebar as data or as outline.
func (m *Model) loadPath(p string) tea.Cmd {
	ext := strings.ToLower(filepath.Ext(p))
	switch ext {
	case ".csv":
		return m.loadData(p)
	case ".wkt":
		m.loadOutline(p)
		return nil
	case ".geojson", ".json", ".kml", ".shp":
		g, err := geom.LoadOutline(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return nil
		}
		if onlyPoints(g) {
			return m.loadData(p)
		}
		m.setOutline(g, p)
		return nil
	}
	m.status = "unsupported file: " + ext
	return nil
}

func (m *Model) loadOutline(p string) {
	g, err := geom.LoadOutline(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.setOutline(g, p)
}

func (m *Model) setOutline(g orb.Geometry, p string) {
	m.outline = g
	m.outlinePath = p
	m.shapes = geom.Flatten(g)
	m.zoom = 1.0
	m.panX, m.panY = 0, 0
	if !m.fit(g) {
		return
	}
	name := filepath.Base(p)
	if p == "" {
		name = "<pasted>"
	}
	m.status = fmt.Sprintf("outline: %s  paths=%d points=%d", name, len(m.shapes.Lines), len(m.shapes.Points))
}

// fit measures g with the active projection and lays it out.
func (m *Model) fit(g orb.Geometry) bool {
	m.fitted = g
	if err := m.proj.SetGeometry(g); err != nil {
		m.status = "outline error: " + err.Error()
		return false
	}
	m.relayout()
	return true
}

func (m *Model) loadData(p string) tea.Cmd {
	recs, err := geom.LoadRecords(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	m.records = recs
	m.dataPath = p
	m.parsed = m.ctrl.Parse(recs)
	m.hoverIdx = -1

	// without an outline the records themselves set the frame
	if m.outline == nil {
		var mp orb.MultiPoint
		for _, r := range recs {
			if r.HasPosition() {
				mp = append(mp, orb.Point{r.Longitude, r.Latitude})
			}
		}
		m.fit(mp)
	}
	m.growing = true
	m.refreshElements()

	visible := 0
	for _, e := range m.elems {
		if !e.Skip {
			visible++
		}
	}
	m.log.WithFields(logrus.Fields{"path": p, "records": len(recs), "visible": visible}).Info("data loaded")
	m.status = fmt.Sprintf("data: %s  records=%d visible=%d", filepath.Base(p), len(recs), visible)
	if m.showAttrs {
		m.refreshAttrs()
	}
	return grow()
}

func (m *Model) refreshElements() {
	mode := bubblemap.ModeDefault
	if m.growing {
		mode = bubblemap.ModeReset
	}
	m.elems = m.ctrl.Update(m.parsed, mode)
}
