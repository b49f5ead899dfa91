// Package web provides a display driver that serves the
// framebuffer to browsers over a websocket. Frames are packed
// one bit per pixel, optionally brotli compressed, and cached
// on both ends so repeated frames cost a slot index.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

//go:embed index.html
var indexHTML []byte

func init() {
	display.Install("web", driver, Options(driver))
}

var driver = New()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 4,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Driver serves the emulator on an HTTP address.
type Driver struct {
	addr      string
	quality   int
	cacheSize int

	emu display.Emulator
	log log.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a web driver listening on :8090.
func New() *Driver {
	return &Driver{
		addr:      ":8090",
		quality:   7,
		cacheSize: 64,
		log:       log.New(),
		stop:      make(chan struct{}),
	}
}

// Options returns the configurable options of d.
func Options(d *Driver) []display.DriverOption {
	return []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &d.addr,
			Type:        "string",
			Description: "The address to serve the web interface on",
		},
		{
			Name:        "quality",
			Default:     7,
			Value:       &d.quality,
			Type:        "int",
			Description: "Brotli quality (0-11) for clients that request compressed frames",
		},
		{
			Name:        "cache",
			Default:     64,
			Value:       &d.cacheSize,
			Type:        "int",
			Description: "Number of frames cached by each client",
		},
	}
}

// WithAddr sets the address the driver listens on.
func (d *Driver) WithAddr(addr string) *Driver {
	d.addr = addr
	return d
}

// WithLogger sets the logger used to report errors.
func (d *Driver) WithLogger(l log.Logger) *Driver {
	d.log = l
	return d
}

func (d *Driver) Initialize(emu display.Emulator) {
	d.emu = emu
}

// Start serves the web interface until the emulator quits or
// the driver is stopped.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	ln, err := net.Listen("tcp", d.addr)
	if err != nil {
		return err
	}

	h := newHub(d.emu, d.log, pressed, released, d.cacheSize, utils.Clamp(0, d.quality, 11))
	go h.run()

	srv := &http.Server{
		Handler:           d.handler(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	d.log.Infof("serving on http://%s", ln.Addr())

	for {
		select {
		case <-d.stop:
			return d.shutdown(srv, h)
		case err := <-serveErr:
			h.close()
			return err
		case f := <-fb:
			h.push(f)
		case e := <-events:
			switch e.Type {
			case event.Quit:
				return d.shutdown(srv, h)
			case event.Title:
				h.publish(append([]byte{Title}, fmt.Sprint(e.Data)...))
			case event.Sound:
				h.publish([]byte{Sound})
			case event.Fault:
				h.publish(append([]byte{Fault}, fmt.Sprint(e.Data)...))
			}
		}
	}
}

// shutdown disconnects every client and stops the server.
func (d *Driver) shutdown(srv *http.Server, h *hub) error {
	if d.emu != nil {
		d.emu.SendCommand(display.Close)
	}

	// hijacked websocket connections are not tracked by the
	// server, so the hub has to close them first
	h.close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (d *Driver) Stop() error {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
	return nil
}

// handler returns the routes of the web interface: the page on
// / and the websocket on /ws. Clients request compressed frames
// with /ws?compression=1.
func (d *Driver) handler(h *hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		// upgrade the connection to a websocket connection
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.log.Errorf("unable to upgrade connection: %s", err)
			return
		}

		c := h.join(conn, r.URL.Query().Get("compression") == "1")
		if c == nil {
			conn.Close()
			return
		}

		// spawn read/write pumps
		go c.ReadPump()
		go c.WritePump()
	})
	return mux
}

// pack packs a frame of one byte per pixel into one bit per
// pixel, most significant bit first.
func pack(frame []byte) []byte {
	packed := make([]byte, (len(frame)+7)/8)
	for i, p := range frame {
		if p != 0 {
			packed[i/8] = utils.SetBit(packed[i/8], uint8(7-i%8))
		}
	}
	return packed
}
