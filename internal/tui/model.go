package tui

import (
	"io"
	"os"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"bubblemap/internal/bubblemap"
	"bubblemap/internal/config"
	"bubblemap/internal/geom"
	"bubblemap/internal/scale"
)

type Options struct {
	Config config.Config
	Logger logrus.FieldLogger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	// zoom and pan reshape the drawable rectangle handed to the projection
	zoom float64
	panX int
	panY int

	status string
	log    logrus.FieldLogger

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// Projection
	reg       *scale.Registry
	proj      *scale.ProjectionScale
	ctrl      *bubblemap.Controller
	projNames []string
	projIdx   int

	// Data
	outline     orb.Geometry
	shapes      geom.Data
	outlinePath string
	fitted      orb.Geometry // what the projection was fitted to
	records     []geom.Record
	parsed      []bubblemap.Parsed
	elems       []bubblemap.Element
	dataPath    string
	growing     bool

	// map size in cells as of the last layout
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showOutline bool
	showBubbles bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverIdx    int

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "bubblemap ready",
		log:         log,
		showOutline: true,
		showBubbles: true,
		hoverIdx:    -1,
	}
	m.cwd, _ = os.Getwd()

	m.reg = scale.NewRegistry()
	m.projNames = m.reg.Names()
	for i, n := range m.projNames {
		if strings.EqualFold(n, cfg.Projection) {
			m.projIdx = i
		}
	}
	m.proj = scale.New(m.reg, scale.WithLogger(log), scale.WithProjection(scale.Name(cfg.Projection)))
	m.ctrl = bubblemap.New(m.proj, scale.NewSizeScale(cfg.SizeOptions()),
		bubblemap.WithRamp(cfg.Bubbles.LowColor, cfg.Bubbles.HighColor))

	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a WKT outline (POLYGON, MULTIPOLYGON, LINESTRING, ...). Enter renders, Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns follow the loaded records)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()

	if cfg.Outline != "" {
		m.loadOutline(cfg.Outline)
	}
	if cfg.Data != "" {
		m.loadData(cfg.Data)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.growing {
		return grow()
	}
	return nil
}
