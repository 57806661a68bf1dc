package inspect

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vela/pkg/dom"
	"github.com/vango-dev/vela/pkg/host"
	"github.com/vango-dev/vela/pkg/metrics"
	"github.com/vango-dev/vela/pkg/vdom"
	"github.com/vango-dev/vela/pkg/vela"
)

var hello = &vdom.Component{
	Name:     "Hello",
	Template: vdom.P(vdom.Class("greeting"), "hello"),
	Instance: func(*vela.Component, map[string]any, vela.Invalidate) vela.Instance {
		return vela.Instance{}
	},
}

func TestSnapshotAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt := vela.NewRuntime(host.NewManual(), vela.WithMetrics(metrics.New(metrics.WithRegistry(reg))))
	doc := dom.NewDocument()
	if _, err := hello.Mount(rt, vela.Options{Target: doc.Body()}); err != nil {
		t.Fatal(err)
	}
	srv := New(rt, doc.Body(), WithGatherer(reg))

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "ok"},
		{"/snapshot", `<body><p class="greeting">hello</p></body>`},
		{"/metrics", "vela_flushes_total"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.want)
			}
		})
	}
}

type closedExecutor struct{}

func (closedExecutor) Submit(func()) error { return host.ErrLoopTerminated }

func TestSnapshotExecutorUnavailable(t *testing.T) {
	rt := vela.NewRuntime(host.NewManual())
	srv := New(rt, dom.NewDocument(), WithExecutor(closedExecutor{}))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestEventsStream(t *testing.T) {
	rt := vela.NewRuntime(host.NewManual())
	srv := New(rt, dom.NewDocument())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	doc := dom.NewDocument()
	c, err := hello.Mount(rt, vela.Options{Target: doc.Body()})
	if err != nil {
		t.Fatal(err)
	}
	c.Destroy()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got []string
	for len(got) < 2 {
		var e vela.Event
		if err := conn.ReadJSON(&e); err != nil {
			t.Fatalf("ReadJSON() error = %v (got %v)", err, got)
		}
		if e.Type == vela.EventComponentCreated || e.Type == vela.EventComponentDestroyed {
			got = append(got, e.Type)
		}
	}
	if got[0] != vela.EventComponentCreated || got[1] != vela.EventComponentDestroyed {
		t.Errorf("events = %v", got)
	}
}

func TestEventsDropWhenQueueIsFull(t *testing.T) {
	rt := vela.NewRuntime(host.NewManual())
	srv := New(rt, dom.NewDocument(), WithEventBuffer(1))
	events, unsubscribe := srv.subscribe()

	doc := dom.NewDocument()
	c, _ := hello.Mount(rt, vela.Options{Target: doc.Body()})
	c.Destroy()

	if e := <-events; e.Type != vela.EventComponentCreated {
		t.Errorf("first event = %q, want %q", e.Type, vela.EventComponentCreated)
	}
	if srv.Dropped() == 0 {
		t.Error("Dropped() = 0, want later events discarded")
	}

	unsubscribe()
	dropped := srv.Dropped()
	c, _ = hello.Mount(rt, vela.Options{Target: doc.Body()})
	c.Destroy()
	if srv.Dropped() != dropped {
		t.Error("events still delivered after unsubscribe")
	}
}
