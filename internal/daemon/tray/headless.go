package tray

import "sync"

// HeadlessBackend runs without a native tray (foreground mode, tests).
// Run calls onReady and blocks until Quit.
type HeadlessBackend struct {
	mu        sync.Mutex
	tooltip   string
	icon      []byte
	items     []*HeadlessItem
	iconClick func()
	done      chan struct{}
	quitOnce  sync.Once
}

var _ Backend = (*HeadlessBackend)(nil)

// NewHeadlessBackend creates a backend with no native surface.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{done: make(chan struct{})}
}

func (b *HeadlessBackend) Run(onReady, onExit func()) {
	if onReady != nil {
		onReady()
	}
	<-b.done
	if onExit != nil {
		onExit()
	}
}

func (b *HeadlessBackend) Quit() {
	b.quitOnce.Do(func() { close(b.done) })
}

func (b *HeadlessBackend) SetIcon(icon []byte) {
	b.mu.Lock()
	b.icon = icon
	b.mu.Unlock()
}

func (b *HeadlessBackend) SetTooltip(text string) {
	b.mu.Lock()
	b.tooltip = text
	b.mu.Unlock()
}

func (b *HeadlessBackend) AddItem(title, tooltip string, onClick func()) Item {
	item := &HeadlessItem{title: title, onClick: onClick}
	b.mu.Lock()
	b.items = append(b.items, item)
	b.mu.Unlock()
	return item
}

func (b *HeadlessBackend) AddSeparator() {}

func (b *HeadlessBackend) OnIconClick(fn func()) {
	b.mu.Lock()
	b.iconClick = fn
	b.mu.Unlock()
}

// ClickIcon simulates a left click on the icon.
func (b *HeadlessBackend) ClickIcon() {
	b.mu.Lock()
	fn := b.iconClick
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Items returns the menu entries in order.
func (b *HeadlessBackend) Items() []*HeadlessItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*HeadlessItem(nil), b.items...)
}

// Tooltip returns the current tooltip.
func (b *HeadlessBackend) Tooltip() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tooltip
}

// HeadlessItem is a menu entry of the headless backend.
type HeadlessItem struct {
	mu      sync.Mutex
	title   string
	onClick func()
}

func (i *HeadlessItem) SetTitle(title string) {
	i.mu.Lock()
	i.title = title
	i.mu.Unlock()
}

// Title returns the entry text.
func (i *HeadlessItem) Title() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.title
}

// Click simulates a click on the entry.
func (i *HeadlessItem) Click() {
	if i.onClick != nil {
		i.onClick()
	}
}
