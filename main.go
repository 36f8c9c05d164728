package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/archive"
	"github.com/sidenotehq/sidenote/internal/auth"
	"github.com/sidenotehq/sidenote/internal/cache"
	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/db"
	"github.com/sidenotehq/sidenote/internal/draft"
	"github.com/sidenotehq/sidenote/internal/editor"
	"github.com/sidenotehq/sidenote/internal/group"
	"github.com/sidenotehq/sidenote/internal/key"
	"github.com/sidenotehq/sidenote/internal/logger"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/notify"
	"github.com/sidenotehq/sidenote/internal/render"
	"github.com/sidenotehq/sidenote/internal/repository"
	"github.com/sidenotehq/sidenote/internal/routes"
	"github.com/sidenotehq/sidenote/internal/save"
	"github.com/sidenotehq/sidenote/internal/sse"
	"github.com/sidenotehq/sidenote/internal/suggest"
	"github.com/sidenotehq/sidenote/internal/theme"
	"github.com/sidenotehq/sidenote/internal/util"
)

//go:embed static/* templates/*
var content embed.FS

var mainLogger zerolog.Logger

var clients = sse.NewSSEClients()

var database db.DB
var annotationRepo repository.AnnotationRepository
var groups group.Lookup

var drafts draft.Store = draft.NewMemoryStore()
var suggestions suggest.Service
var tagEditor *editor.TagEditor
var saver *editor.Saver
var shortcuts *editor.Shortcut
var editorHandler *editor.Handler

var authProvider auth.AuthProvider

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	configPath := os.Getenv("SIDENOTE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	l := logger.New(config.AppConfig.Logging.Level)
	mainLogger = logger.Component(l, "main")
	setLoggers(l)

	database = db.NewSQLite(config.AppConfig.Database.Path)
	if err := database.InitDB(); err != nil {
		mainLogger.Fatal().Err(err).Msg("Error initializing database")
	}

	groupLookup := group.NewDBGroupLookup(database)
	if err := groupLookup.EnsureDefaultGroup(); err != nil {
		mainLogger.Fatal().Err(err).Msg("Error seeding default group")
	}
	groups = groupLookup

	repo := repository.NewDBAnnotationRepository(database)
	repo.SetReloadNotifier(handleReloadAnnotation)
	go repo.Init()
	annotationRepo = repo

	drafts.Subscribe(handleDraftChange)

	suggestions = suggest.NewDBSuggestionService(database)
	tagEditor = editor.NewTagEditor(drafts, suggestions)

	saveService := save.NewRepositoryService(repo, drafts)
	if config.AppConfig.Archive.Enabled {
		mirror, err := archive.NewS3Archive(
			os.Getenv("ARCHIVE_ACCESS_KEY_ID"),
			os.Getenv("ARCHIVE_SECRET_ACCESS_KEY"),
			config.AppConfig.Archive,
		)
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Error initializing archive")
		}
		saveService.SetMirror(mirror)
	}

	notifications := notify.NewMulti(notify.NewSSESink(clients), notify.NewLogSink())
	saver = editor.NewSaver(tagEditor, saveService, notifications)

	keymap := key.DefaultKeymap()
	if path := config.AppConfig.Features.Editor.KeymapPath; path != "" {
		loaded, err := key.LoadKeymap(path)
		if err != nil {
			mainLogger.Warn().Err(err).Str("path", path).Msg("Error loading keymap, using default")
		} else {
			keymap = loaded
		}
	}
	shortcuts = editor.NewShortcut(drafts, saver, keymap)

	editorHandler = editor.NewHandler(drafts, tagEditor, groups, content)

	mux := http.NewServeMux()

	authCfg := config.AppConfig.Features.Authentication
	switch {
	case !authCfg.Enabled:
		// Without authentication nobody can edit; the service is read only.
		authProvider = disabledAuthProvider{}
	case authCfg.Type == "clerk":
		authProvider = auth.NewClerkAuthProvider(os.Getenv("CLERK_API"), database)
	default:
		provider, err := auth.NewEd25519AuthProvider(
			os.Getenv("ED25519_PUBKEY"),
			"Authorization",
			model.UserID("admin"),
		)
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Error creating Ed25519 auth provider")
		}
		authProvider = provider
		auth.RegisterEd25519AuthRoutes(mux, provider, content)
	}

	// Calculate the hash of static content
	static, _ := fs.Sub(content, config.StaticLocalDir)
	fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			data, err := fs.ReadFile(static, path)
			if err != nil {
				return err
			}
			cache.SetStaticHash(config.StaticURLPath+path, util.ContentHash(data))
		}
		return nil
	})

	mux.HandleFunc(routes.RobotsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("User-agent: *\nDisallow:"))
	})

	mux.HandleFunc(routes.ThemeOppositeIcon, func(w http.ResponseWriter, r *http.Request) {
		currTheme := r.URL.Query().Get("theme")
		if currTheme == "" {
			http.Error(w, "theme required", http.StatusBadRequest)
			return
		}

		w.Header().Set(config.HCType, config.CTypeHTML)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(theme.GetThemeIcon(currTheme)))
	})

	mux.Handle(config.StaticURLPath, http.StripPrefix(config.StaticURLPath, http.FileServer(http.FS(static))))
	mux.HandleFunc(config.AnnotationsURLPath, serveAnnotation)
	mux.HandleFunc(config.EditAnnotationURLPath, ServeEditAnnotation)
	mux.HandleFunc(routes.NewAnnotation, serveNewAnnotation)
	mux.HandleFunc(routes.ThemeToggle, serveThemePostToggle)
	mux.HandleFunc(routes.SyntaxThemeSet, serveSyntaxThemePostSet)
	mux.HandleFunc(routes.SyntaxThemeGet, serveSyntaxThemeGetTheme)
	mux.HandleFunc(routes.SSEPath, eventsHandler)
	mux.HandleFunc(routes.RootPath, serveIndex)

	mux.Handle(
		routes.PartialsDraftPreview,
		http.HandlerFunc(midWithDraftSaving(serveDraftPreview)),
	)

	mux.HandleFunc(routes.WebhookUser, func(w http.ResponseWriter, r *http.Request) {
		authProvider.HandleWebhookUser(w, r)
	})

	mux.HandleFunc(routes.APIAnnotationTags, apiAnnotationTags)
	mux.HandleFunc(routes.APIAnnotationPendingTag, apiAnnotationPendingTag)
	mux.HandleFunc(routes.APIAnnotationPrivacy, apiAnnotationPrivacy)
	mux.HandleFunc(routes.APIAnnotationSave, apiAnnotationSave)
	mux.HandleFunc(routes.APIAnnotationKey, apiAnnotationKey)
	mux.HandleFunc(routes.APIAnnotationDraft, apiAnnotationDraft)
	mux.HandleFunc(routes.APITagsSuggest, apiTagsSuggest)

	securedMux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == routes.RobotsPath { // Ignore robots.txt
			mux.ServeHTTP(w, r)
		} else {
			secureHeaders(mux.ServeHTTP)(w, r)
		}
	})

	authMux := authProvider.WithHeaderAuthorization()(securedMux)
	authHandlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authMux.ServeHTTP(w, r)
	})

	addr := config.ServerAddress()
	mainLogger.Info().Str("addr", addr).Msg("Server listening")
	err := http.ListenAndServe(addr, cacheIt(authHandlerFunc))
	mainLogger.Fatal().Err(err).Msg("Server stopped")
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(logger.Component(l, "config"))
	db.SetLogger(logger.Component(l, "db"))
	repository.SetLogger(logger.Component(l, "repository"))
	group.SetLogger(logger.Component(l, "group"))
	suggest.SetLogger(logger.Component(l, "suggest"))
	save.SetLogger(logger.Component(l, "save"))
	editor.SetLogger(logger.Component(l, "editor"))
	notify.SetLogger(logger.Component(l, "notify"))
	theme.SetLogger(logger.Component(l, "theme"))
	render.SetLogger(logger.Component(l, "render"))
	auth.SetLogger(logger.Component(l, "auth"))
	archive.SetLogger(logger.Component(l, "archive"))
}

// disabledAuthProvider is used when authentication is switched off in the
// config. Sessions never resolve to a user, so every editing route rejects.
type disabledAuthProvider struct{}

func (disabledAuthProvider) WithHeaderAuthorization() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

func (disabledAuthProvider) GetUserIDFromSession(r *http.Request) (model.UserID, error) {
	return "", fmt.Errorf("authentication is disabled")
}

func (disabledAuthProvider) EnforceUserAndGetID(w http.ResponseWriter, r *http.Request) (model.UserID, error) {
	http.Error(w, "Editing is disabled", http.StatusForbidden)
	return "", fmt.Errorf("authentication is disabled")
}

func (disabledAuthProvider) HandleWebhookUser(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

// requireOwnedAnnotation resolves the {id} path value to an annotation owned
// by the session user. It writes the error response itself, so callers just
// return on false.
func requireOwnedAnnotation(w http.ResponseWriter, r *http.Request) (*model.Annotation, bool) {
	usrID, err := authProvider.EnforceUserAndGetID(w, r)
	if err != nil {
		return nil, false
	}

	annotation, err := annotationRepo.ReadAnnotation(model.AnnotationID(r.PathValue("id")))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	if annotation.Owner != usrID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}

	return annotation, true
}

func apiAnnotationTags(w http.ResponseWriter, r *http.Request) {
	annotation, ok := requireOwnedAnnotation(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		if !tagEditor.AddTag(annotation.ID, r.FormValue("tag")) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	case http.MethodDelete:
		if !tagEditor.RemoveTag(annotation.ID, r.FormValue("tag")) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	editorHandler.RenderTagsPartial(w, r, annotation)
}

func apiAnnotationPendingTag(w http.ResponseWriter, r *http.Request) {
	annotation, ok := requireOwnedAnnotation(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPut {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	tagEditor.SetPending(annotation.ID, r.FormValue("text"))
	w.WriteHeader(http.StatusNoContent)
}

func apiAnnotationPrivacy(w http.ResponseWriter, r *http.Request) {
	annotation, ok := requireOwnedAnnotation(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	d, ok := drafts.GetDraft(annotation.ID)
	if !ok {
		http.Error(w, "annotation is not being edited", http.StatusConflict)
		return
	}

	fields := draft.FieldsFromDraft(d)
	fields.IsPrivate = r.FormValue("private") == "true"
	drafts.CreateDraft(annotation.ID, fields)

	w.WriteHeader(http.StatusNoContent)
}

// apiAnnotationSave runs the orchestrated save. The response is always 204:
// a failed save surfaces as an SSE toast, not as an HTTP error.
func apiAnnotationSave(w http.ResponseWriter, r *http.Request) {
	annotation, ok := requireOwnedAnnotation(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	saver.Save(r.Context(), annotation)
	w.WriteHeader(http.StatusNoContent)
}

func apiAnnotationKey(w http.ResponseWriter, r *http.Request) {
	annotation, ok := requireOwnedAnnotation(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var event struct {
		Key   string `json:"key"`
		Ctrl  bool   `json:"ctrl"`
		Alt   bool   `json:"alt"`
		Shift bool   `json:"shift"`
		Meta  bool   `json:"meta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid key event", http.StatusBadRequest)
		return
	}

	ev := key.NewEvent(event.Key, key.ModifiersFromFlags(event.Ctrl, event.Alt, event.Shift, event.Meta))
	handled := shortcuts.Handle(r.Context(), ev, annotation)

	w.Header().Set(config.HCType, config.CTypeJSON)
	json.NewEncoder(w).Encode(map[string]bool{"handled": handled})
}

func apiAnnotationDraft(w http.ResponseWriter, r *http.Request) {
	annotation, ok := requireOwnedAnnotation(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodDelete {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	drafts.RemoveDraft(annotation.ID)

	w.Header().Set(config.HHxRedirect, config.AnnotationsURLPath+string(annotation.ID))
	w.WriteHeader(http.StatusNoContent)
}

func apiTagsSuggest(w http.ResponseWriter, r *http.Request) {
	if _, err := authProvider.EnforceUserAndGetID(w, r); err != nil {
		return
	}

	if !config.AppConfig.Features.Suggestions.Enabled {
		w.Header().Set(config.HCType, config.CTypeJSON)
		w.Write([]byte("[]"))
		return
	}

	results, err := suggestions.Filter(r.URL.Query().Get("q"), config.AppConfig.Features.Suggestions.Limit)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []string{}
	}

	w.Header().Set(config.HCType, config.CTypeJSON)
	json.NewEncoder(w).Encode(results)
}

func serveNewAnnotation(w http.ResponseWriter, r *http.Request) {
	usrID, err := authProvider.EnforceUserAndGetID(w, r)
	if err != nil {
		return
	}

	annotation := annotationRepo.NewAnnotation()
	annotation.Owner = usrID
	annotation.Group = model.GroupID(config.AppConfig.Annotations.DefaultGroup)
	annotation.URI = r.FormValue("uri")

	if err := annotationRepo.SaveAnnotation(annotation); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	target := config.EditAnnotationURLPath + string(annotation.ID)
	w.Header().Add(config.HHxRedirect, target)
	http.Redirect(w, r, target, http.StatusFound)
}

func ServeEditAnnotation(w http.ResponseWriter, r *http.Request) {
	usrID, err := authProvider.GetUserIDFromSession(r)
	if err != nil {
		// Verify if it's an Hx-Request and if not, use standard redirect
		if r.Header.Get("Hx-Request") == "" {
			http.Redirect(w, r, routes.AuthLogin+"?redirect="+url.QueryEscape(r.URL.String()), http.StatusFound)
			return
		}
		// Redirect unauthorized editing attempts to the login page
		w.Header().Add(config.HHxRedirect, routes.AuthLogin+"?redirect="+url.QueryEscape(r.URL.String()))
		return
	}

	annotationID := strings.TrimPrefix(r.URL.Path, config.EditAnnotationURLPath)
	if annotationID == "" {
		http.NotFound(w, r)
		return
	}

	annotation, err := annotationRepo.ReadAnnotation(model.AnnotationID(annotationID))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Check ownership
	if usrID != annotation.Owner {
		w.Header().Add(config.HHxRedirect, r.Header.Get("Referer"))
		return
	}

	editorHandler.ServeAnnotationEditor(w, r, annotation)
}

// midWithDraftSaving persists the submitted editor text into the draft before
// the wrapped handler runs. The draft is replaced wholesale; requests for
// annotations that are not being edited pass through untouched.
func midWithDraftSaving(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		annotationID := r.FormValue("annotation-id")
		if annotationID == "" {
			next.ServeHTTP(w, r)
			return
		}

		id := model.AnnotationID(annotationID)
		if d, ok := drafts.GetDraft(id); ok {
			fields := draft.FieldsFromDraft(d)
			fields.Text = r.FormValue("content")
			drafts.CreateDraft(id, fields)
		}

		next.ServeHTTP(w, r)
	}
}

func serveDraftPreview(w http.ResponseWriter, r *http.Request) {
	content := r.FormValue("content")
	if content == "" {
		content = "Start typing in the editor to see a preview here."
	}

	htmlContent := render.RenderMarkdown([]byte(content), theme.GetSyntaxThemeFromRequest(r))

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write(htmlContent)
}

func cacheIt(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Vary", "Cookie")

		// Add etag header to response if it's a static file
		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h(w, r)
	}
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")

		h(w, r)
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	// Anonymous visitors see only public annotations
	usrID, _ := authProvider.GetUserIDFromSession(r)
	groupFilter := r.URL.Query().Get("group")

	all := annotationRepo.GetAnnotationList()
	annotations := make([]model.Annotation, 0, len(all))
	for _, annotation := range all {
		if annotation.IsPrivate && annotation.Owner != usrID {
			continue
		}
		if groupFilter != "" && annotation.Group != model.GroupID(groupFilter) {
			continue
		}
		annotations = append(annotations, annotation)
	}

	tmpl, err := template.ParseFS(content, config.TemplatesLocalDir+"/"+config.TemplateLayout, config.TemplatesLocalDir+"/"+config.TemplateIndex)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		*model.PageData
		AnnotationsPath string
		Annotations     []model.Annotation
		GroupFilter     string
	}{
		PageData:        model.NewPageData(r),
		AnnotationsPath: config.AnnotationsURLPath,
		Annotations:     annotations,
		GroupFilter:     groupFilter,
	}

	w.Header().Set(config.HETag, util.ContentHash([]byte(data.Theme+data.SyntaxTheme)))

	err = tmpl.ExecuteTemplate(w, config.TemplateLayout, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func serveAnnotation(w http.ResponseWriter, r *http.Request) {
	annotationID := strings.TrimPrefix(r.URL.Path, config.AnnotationsURLPath)
	if annotationID == "" {
		http.NotFound(w, r)
		return
	}

	stored, err := annotationRepo.ReadAnnotation(model.AnnotationID(annotationID))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Private annotations are visible to their owner only
	if stored.IsPrivate {
		usrID, err := authProvider.GetUserIDFromSession(r)
		if err != nil || usrID != stored.Owner {
			http.NotFound(w, r)
			return
		}
	}

	// Render into a copy so the repository's cached annotation stays clean
	annotation := *stored
	htmlContent := render.RenderMarkdownCached([]byte(annotation.Text), annotation.TextHash, theme.GetSyntaxThemeFromRequest(r))
	annotation.Content = template.HTML(htmlContent)

	showLicense := false
	if !annotation.IsPrivate {
		if g, ok := groups.GetGroup(annotation.Group); ok && g.WorldReadable() {
			showLicense = true
		}
	}

	data := struct {
		*model.PageData
		Annotation        *model.Annotation
		ShowLicenseNotice bool
	}{
		PageData:          model.NewPageData(r),
		Annotation:        &annotation,
		ShowLicenseNotice: showLicense,
	}

	tmpl, err := template.ParseFS(content, config.TemplatesLocalDir+"/"+config.TemplateLayout, config.TemplatesLocalDir+"/"+config.TemplateAnnotation)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	err = tmpl.ExecuteTemplate(w, config.TemplateLayout, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func serveThemePostToggle(w http.ResponseWriter, r *http.Request) {
	currentTheme := theme.GetThemeFromRequest(r)

	newTheme := config.DefaultTheme
	if currentTheme == config.DarkTheme {
		newTheme = config.LightTheme
	}

	http.SetCookie(w, &http.Cookie{
		Name:  config.CookieTheme,
		Value: newTheme,
		Path:  "/",
	})

	syntaxTheme := theme.GetDefaultSyntaxTheme(newTheme)
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil {
		syntaxTheme = cookie.Value
	}

	w.Header().Set(config.HHxTrigger, fmt.Sprintf(`{"themeChanged":{"value":"%s","syntaxTheme":"%s"}}`, newTheme, syntaxTheme))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(theme.GetThemeIcon(newTheme)))
}

func serveSyntaxThemePostSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	currTheme := r.FormValue("syntax-theme-select")
	if currTheme == "" {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSyntaxTheme,
		Value:    currTheme,
		Path:     "/",
		HttpOnly: true,
	})

	themeStyle := []byte(theme.GenerateSyntaxCSS(currTheme))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func serveSyntaxThemeGetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	currTheme := r.PathValue("theme")

	themeStyle := []byte(theme.GenerateSyntaxCSS(currTheme))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func eventsHandler(w http.ResponseWriter, r *http.Request) {
	annotationID := r.URL.Query().Get("annotation")
	if annotationID == "" {
		http.Error(w, "Annotation parameter required", http.StatusBadRequest)
		return
	}

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Del("X-Content-Type-Options")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := &sse.Client{
		Msg:          make(chan string),
		AnnotationID: model.AnnotationID(annotationID),
	}

	clients.Add(client)

	mainLogger.Debug().Str("annotation_id", annotationID).Msg("New SSE client connected")

	defer func() {
		clients.Delete(client)
		mainLogger.Debug().Str("annotation_id", annotationID).Msg("SSE client disconnected")
	}()

	notifyDone := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notifyDone:
			return
		}
	}
}

func handleReloadAnnotation(annotationID model.AnnotationID) {
	go clients.Broadcast(annotationID, "reload")
}

type draftStatePayload struct {
	Type    string `json:"type"`
	Editing bool   `json:"editing"`
}

// handleDraftChange tells sessions watching an annotation whether a draft
// still exists for it, so open editors can reflect a save or discard made
// in another session.
func handleDraftChange(annotationID model.AnnotationID) {
	_, editing := drafts.GetDraft(annotationID)
	payload, err := json.Marshal(draftStatePayload{Type: "draft", Editing: editing})
	if err != nil {
		mainLogger.Error().Err(err).Msg("Error encoding draft state payload")
		return
	}
	go clients.Broadcast(annotationID, string(payload))
}
