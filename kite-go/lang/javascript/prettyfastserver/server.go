package prettyfastserver

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/codegangsta/negroni"
	spooky "github.com/dgryski/go-spooky"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"
	"github.com/kiteco/prettyfast/kite-go/health"
	"github.com/kiteco/prettyfast/kite-go/lang/html/inlinescript"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfast"
	"github.com/kiteco/prettyfast/kite-go/web/midware"
	"github.com/kiteco/prettyfast/kite-go/web/webutils"
	"github.com/kiteco/prettyfast/kite-golib/errors"
	"github.com/kiteco/prettyfast/kite-golib/sourcemap"
	"github.com/kiteco/prettyfast/kite-golib/status"
	"go.uber.org/zap"
)

// Options for a Server.
type Options struct {
	// CacheSize is the number of responses kept in memory.
	CacheSize int
	// MaxBytes limits the size of a request body. Zero means no limit.
	MaxBytes int64
	// Config provides the values requests leave out.
	Config prettyfast.Config
}

// Request is the body of POST /prettify. Zero values fall back to the
// server's config.
type Request struct {
	Source              string `json:"source"`
	URL                 string `json:"url,omitempty"`
	Indent              string `json:"indent,omitempty"`
	HTML                bool   `json:"html,omitempty"`
	OriginalStartLine   int    `json:"original_start_line,omitempty"`
	OriginalStartColumn int    `json:"original_start_column,omitempty"`
	GeneratedStartLine  int    `json:"generated_start_line,omitempty"`
}

// Response is the body of a successful POST /prettify.
type Response struct {
	Code string               `json:"code"`
	Map  *sourcemap.Generator `json:"map"`
	// Diff from the source to Code, only computed with ?check=1
	Diff string `json:"diff,omitempty"`
	// Scripts is the number of inline scripts formatted in an HTML document.
	Scripts int `json:"scripts,omitempty"`
}

// Server pretty prints JavaScript over HTTP.
type Server struct {
	opts   Options
	cache  *lru.Cache
	logger *zap.Logger
	log    *zap.SugaredLogger
}

// NewServer returns a Server with an empty cache.
func NewServer(opts Options, logger *zap.Logger) (*Server, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config")
	}
	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "creating cache of size %d", opts.CacheSize)
	}
	return &Server{
		opts:   opts,
		cache:  cache,
		logger: logger,
		log:    logger.Sugar(),
	}, nil
}

// SetupRoutes registers the server's endpoints on r.
func (s *Server) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/prettify", status.RecordStatusCode(s.handlePrettify, statusCodes)).Methods("POST")
	r.HandleFunc(health.Endpoint, health.Handler).Methods("GET")
	r.HandleFunc(health.ReadyEndpoint, health.ReadyHandler).Methods("GET")
	r.Handle("/debug/status-json", negroni.New(
		midware.NewNoCache(),
		negroni.Wrap(http.HandlerFunc(status.HandlerJSON)),
	)).Methods("GET")
}

// Handler returns the routes wrapped in the default middleware. Responses are
// compressed for clients that accept it.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.SetupRoutes(r)
	return midware.Wrap(handlers.CompressHandler(r), s.logger)
}

func (s *Server) handlePrettify(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if s.opts.MaxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.opts.MaxBytes)
	}
	buf, err := ioutil.ReadAll(body)
	if err != nil {
		webutils.ReportBadRequest(w, "error reading request: %v", err)
		return
	}
	requestBytes.Record(int64(len(buf)))

	var req Request
	if err := json.Unmarshal(buf, &req); err != nil {
		webutils.ReportBadRequest(w, "error unmarshalling request: %v", err)
		return
	}
	check := r.URL.Query().Get("check") == "1"

	key, err := cacheKey(req, check)
	if err != nil {
		webutils.ReportError(w, http.StatusInternalServerError, "error computing cache key: %v", err)
		return
	}
	if resp, ok := s.cache.Get(key); ok {
		cacheHits.Hit()
		webutils.ReturnJSON(w, http.StatusOK, resp)
		return
	}
	cacheHits.Miss()

	resp, err := s.prettify(req, check)
	if err != nil {
		var perr jsscanner.PosError
		if errors.As(err, &perr) {
			s.log.Infow("error tokenizing", "url", req.URL, "error", err)
			webutils.ReportPosError(w, http.StatusUnprocessableEntity, err.Error(), perr.Pos.Line, perr.Pos.Column)
			return
		}
		webutils.ReportBadRequest(w, "%v", err)
		return
	}

	s.cache.Add(key, resp)
	webutils.ReturnJSON(w, http.StatusOK, resp)
}

func (s *Server) prettify(req Request, check bool) (*Response, error) {
	conf := s.opts.Config
	if req.URL != "" {
		conf.URL = req.URL
	}
	if req.OriginalStartLine != 0 {
		conf.OriginalStartLine = req.OriginalStartLine
	}
	if req.OriginalStartColumn != 0 {
		conf.OriginalStartColumn = req.OriginalStartColumn
	}
	if req.GeneratedStartLine != 0 {
		conf.GeneratedStartLine = req.GeneratedStartLine
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	opts := conf.Options()
	if req.Indent != "" {
		opts.Indent = req.Indent
	}
	g := sourcemap.NewGenerator(opts.URL)
	opts.SourceMap = g

	resp := &Response{Map: g}
	if req.HTML {
		res, err := inlinescript.Prettify([]byte(req.Source), opts)
		if err != nil {
			return nil, err
		}
		resp.Code = res.Code
		resp.Scripts = res.Scripts
	} else {
		res, err := prettyfast.Prettify([]byte(req.Source), opts)
		if err != nil {
			return nil, err
		}
		resp.Code = res.Code
	}

	if check {
		resp.Diff = prettyfast.Diff(req.Source, resp.Code)
	}
	return resp, nil
}

// cacheKey hashes the canonical encoding of a request.
func cacheKey(req Request, check bool) (uint64, error) {
	buf, err := json.Marshal(struct {
		Request
		Check bool `json:"check"`
	}{req, check})
	if err != nil {
		return 0, err
	}
	return spooky.Hash64(buf), nil
}
