//go:build darwin

package webview

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego/objc"

	"github.com/glasshost/glasshost/internal/platform"
)

// ipcShim routes the generic window.ipc.postMessage primitive the bootstrap
// script uses onto WebKit's script message handler. Installed at document
// start so it survives navigation.
const ipcShim = `window.ipc = { postMessage: function(s) {
    window.webkit.messageHandlers.glasshost.postMessage(String(s));
} };`

var (
	selAlloc                          = objc.RegisterName("alloc")
	selInit                           = objc.RegisterName("init")
	selNew                            = objc.RegisterName("new")
	selRelease                        = objc.RegisterName("release")
	selUserContentController          = objc.RegisterName("userContentController")
	selAddScriptMessageHandlerName    = objc.RegisterName("addScriptMessageHandler:name:")
	selAddUserScript                  = objc.RegisterName("addUserScript:")
	selInitWithSourceInjectionTime    = objc.RegisterName("initWithSource:injectionTime:forMainFrameOnly:")
	selInitWithFrameConfiguration     = objc.RegisterName("initWithFrame:configuration:")
	selPreferences                    = objc.RegisterName("preferences")
	selSetValueForKey                 = objc.RegisterName("setValue:forKey:")
	selNumberWithBool                 = objc.RegisterName("numberWithBool:")
	selStringWithUTF8String           = objc.RegisterName("stringWithUTF8String:")
	selUTF8String                     = objc.RegisterName("UTF8String")
	selURLWithString                  = objc.RegisterName("URLWithString:")
	selRequestWithURL                 = objc.RegisterName("requestWithURL:")
	selLoadRequest                    = objc.RegisterName("loadRequest:")
	selEvaluateJavaScriptCompletion   = objc.RegisterName("evaluateJavaScript:completionHandler:")
	selSetFrame                       = objc.RegisterName("setFrame:")
	selSetHidden                      = objc.RegisterName("setHidden:")
	selAddSubview                     = objc.RegisterName("addSubview:")
	selRemoveFromSuperview            = objc.RegisterName("removeFromSuperview")
	selSetCustomUserAgent             = objc.RegisterName("setCustomUserAgent:")
	selSetOpaque                      = objc.RegisterName("setOpaque:")
	selBody                           = objc.RegisterName("body")
	selDescription                    = objc.RegisterName("description")
	selDidReceiveScriptMessage        = objc.RegisterName("userContentController:didReceiveScriptMessage:")
	selSetAutoresizingMask            = objc.RegisterName("setAutoresizingMask:")
)

// cgRect mirrors CGRect for setFrame:/initWithFrame: calls.
type cgRect struct {
	X, Y, W, H float64
}

// handlerRegistry maps message-handler instances back to their engine. The
// objc callback only carries the receiver ID.
var (
	handlerMu       sync.Mutex
	handlerRegistry = map[objc.ID]*darwinEngine{}
	handlerClass    objc.Class
	handlerClassErr error
	handlerOnce     sync.Once
)

func messageHandlerClass() (objc.Class, error) {
	handlerOnce.Do(func() {
		handlerClass, handlerClassErr = objc.RegisterClass(
			"GlasshostScriptMessageHandler",
			objc.GetClass("NSObject"),
			[]*objc.Protocol{objc.GetProtocol("WKScriptMessageHandler")},
			nil,
			[]objc.MethodDef{
				{
					Cmd: selDidReceiveScriptMessage,
					Fn: func(self objc.ID, _ objc.SEL, _ objc.ID, message objc.ID) {
						handlerMu.Lock()
						eng := handlerRegistry[self]
						handlerMu.Unlock()
						if eng == nil {
							return
						}
						body := message.Send(selBody)
						if body == 0 {
							return
						}
						// Body is NSString for string posts, otherwise use
						// its description.
						raw := goString(body.Send(selUTF8String))
						if raw == "" {
							raw = goString(body.Send(selDescription).Send(selUTF8String))
						}
						eng.onMessage(raw)
					},
				},
			},
		)
	})
	return handlerClass, handlerClassErr
}

// darwinEngine drives a WKWebView added as a subview of the host window's
// content view.
type darwinEngine struct {
	webview   objc.ID
	handler   objc.ID
	onMessage func(string)
}

func newNativeEngine(h platform.Handle, cfg Config, onMessage func(string)) (Engine, error) {
	if h.IsZero() {
		return nil, platform.ErrNoWindow
	}
	class, err := messageHandlerClass()
	if err != nil {
		return nil, fmt.Errorf("webview: register message handler class: %w", err)
	}

	eng := &darwinEngine{onMessage: onMessage}

	conf := objc.ID(objc.GetClass("WKWebViewConfiguration")).Send(selNew)
	ucc := conf.Send(selUserContentController)

	eng.handler = objc.ID(class).Send(selAlloc).Send(selInit)
	handlerMu.Lock()
	handlerRegistry[eng.handler] = eng
	handlerMu.Unlock()
	ucc.Send(selAddScriptMessageHandlerName, eng.handler, nsString("glasshost"))

	// The shim must exist before any page script runs.
	shim := objc.ID(objc.GetClass("WKUserScript")).Send(selAlloc).
		Send(selInitWithSourceInjectionTime, nsString(ipcShim), 0 /* AtDocumentStart */, 1)
	ucc.Send(selAddUserScript, shim)

	if cfg.DevTools {
		yes := objc.ID(objc.GetClass("NSNumber")).Send(selNumberWithBool, 1)
		conf.Send(selPreferences).Send(selSetValueForKey, yes, nsString("developerExtrasEnabled"))
	}

	frame := cgRect{
		X: float64(cfg.Bounds.X),
		Y: float64(cfg.Bounds.Y),
		W: float64(cfg.Bounds.Width),
		H: float64(cfg.Bounds.Height),
	}
	wv := objc.ID(objc.GetClass("WKWebView")).Send(selAlloc).
		Send(selInitWithFrameConfiguration, frame, conf)
	if wv == 0 {
		eng.unregister()
		return nil, fmt.Errorf("webview: WKWebView construction failed")
	}
	eng.webview = wv

	if cfg.UserAgent != "" {
		wv.Send(selSetCustomUserAgent, nsString(cfg.UserAgent))
	}
	if cfg.Transparent {
		wv.Send(selSetOpaque, 0)
	}
	// NSViewWidthSizable|NSViewHeightSizable keeps the frame valid between
	// explicit bounds syncs.
	wv.Send(selSetAutoresizingMask, 2|16)

	objc.ID(h.Pointer()).Send(selAddSubview, wv)

	url := cfg.URL
	if url == "" {
		url = AboutBlank
	}
	if err := eng.Navigate(url); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

func (e *darwinEngine) Navigate(url string) error {
	nsurl := objc.ID(objc.GetClass("NSURL")).Send(selURLWithString, nsString(url))
	if nsurl == 0 {
		return fmt.Errorf("webview: invalid url %q", url)
	}
	req := objc.ID(objc.GetClass("NSURLRequest")).Send(selRequestWithURL, nsurl)
	e.webview.Send(selLoadRequest, req)
	return nil
}

func (e *darwinEngine) Eval(script string) error {
	e.webview.Send(selEvaluateJavaScriptCompletion, nsString(script), 0)
	return nil
}

func (e *darwinEngine) SetBounds(b Bounds) error {
	frame := cgRect{X: float64(b.X), Y: float64(b.Y), W: float64(b.Width), H: float64(b.Height)}
	e.webview.Send(selSetFrame, frame)
	return nil
}

func (e *darwinEngine) SetVisible(visible bool) error {
	hidden := 1
	if visible {
		hidden = 0
	}
	e.webview.Send(selSetHidden, hidden)
	return nil
}

func (e *darwinEngine) Close() error {
	e.unregister()
	if e.webview != 0 {
		e.webview.Send(selRemoveFromSuperview)
		e.webview.Send(selRelease)
		e.webview = 0
	}
	return nil
}

func (e *darwinEngine) unregister() {
	if e.handler != 0 {
		handlerMu.Lock()
		delete(handlerRegistry, e.handler)
		handlerMu.Unlock()
		e.handler.Send(selRelease)
		e.handler = 0
	}
}

func nsString(s string) objc.ID {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8String, unsafe.Pointer(&buf[0]))
}

func goString(p objc.ID) string {
	if p == 0 {
		return ""
	}
	var out []byte
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Pointer(uintptr(p) + i))
		if c == 0 {
			break
		}
		out = append(out, c)
	}
	return string(out)
}
