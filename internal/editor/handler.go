package editor

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/draft"
	"github.com/sidenotehq/sidenote/internal/group"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/routes"
	"github.com/sidenotehq/sidenote/internal/util"
)

// Handler serves the annotation editor page.
type Handler struct {
	drafts draft.Store
	tags   *TagEditor
	groups group.Lookup

	fs fs.FS
}

func NewHandler(drafts draft.Store, tags *TagEditor, groups group.Lookup, fs fs.FS) *Handler {
	return &Handler{
		drafts: drafts,
		tags:   tags,
		groups: groups,
		fs:     fs,
	}
}

// editorPageData is the template payload for the editor page and its
// htmx partials.
type editorPageData struct {
	*model.PageData
	*model.Annotation

	Draft      draft.Draft
	PendingTag string

	// True when the draft would be published somewhere world readable,
	// which the page surfaces as a content licensing notice.
	ShowLicenseNotice bool

	// Group readability on its own, so the page can re-evaluate the
	// notice when the privacy checkbox flips without a round trip.
	GroupWorldReadable bool

	HxPreviewURL    string
	HxSaveURL       string
	HxTagsURL       string
	HxPendingTagURL string
	HxPrivacyURL    string
	HxKeyURL        string
	HxDraftURL      string
}

// ServeAnnotationEditor opens an editing session for the annotation. The
// first visit copies the saved annotation into a fresh draft; later visits
// pick up the existing draft unchanged.
func (h *Handler) ServeAnnotationEditor(w http.ResponseWriter, r *http.Request, annotation *model.Annotation) {
	tmpl, err := template.ParseFS(h.fs, config.TemplatesLocalDir+"/"+config.TemplateLayout, config.TemplatesLocalDir+"/"+config.TemplateEditor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d, ok := h.drafts.GetDraft(annotation.ID)
	if !ok {
		h.drafts.CreateDraft(annotation.ID, draft.Fields{
			Text:      annotation.Text,
			Tags:      annotation.Tags,
			IsPrivate: annotation.IsPrivate,
		})
		d, _ = h.drafts.GetDraft(annotation.ID)
	}

	data := h.pageData(r, annotation, d)

	isEditor := true
	data.IsEditorPage = &isEditor
	data.ShowToolbar = &isEditor

	w.Header().Set(config.HETag, util.ContentHash([]byte(data.Theme+data.SyntaxTheme)))
	err = tmpl.ExecuteTemplate(w, config.TemplateLayout, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RenderTagsPartial writes the tag list fragment for htmx swaps after a tag
// change.
func (h *Handler) RenderTagsPartial(w http.ResponseWriter, r *http.Request, annotation *model.Annotation) {
	tmpl, err := template.ParseFS(h.fs, config.TemplatesLocalDir+"/"+config.TemplateEditor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d, ok := h.drafts.GetDraft(annotation.ID)
	if !ok {
		http.Error(w, "annotation is not being edited", http.StatusConflict)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	err = tmpl.ExecuteTemplate(w, "tags", h.pageData(r, annotation, d))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) pageData(r *http.Request, annotation *model.Annotation, d draft.Draft) *editorPageData {
	worldReadable := false
	if g, ok := h.groups.GetGroup(annotation.Group); ok && g.WorldReadable() {
		worldReadable = true
	}

	return &editorPageData{
		PageData:   model.NewPageData(r),
		Annotation: annotation,

		Draft:      d,
		PendingTag: h.tags.Pending(annotation.ID),

		ShowLicenseNotice:  !d.IsPrivate && worldReadable,
		GroupWorldReadable: worldReadable,

		HxPreviewURL:    routes.PartialsDraftPreview,
		HxSaveURL:       routes.AnnotationSaveURL(string(annotation.ID)),
		HxTagsURL:       routes.AnnotationTagsURL(string(annotation.ID)),
		HxPendingTagURL: routes.AnnotationPendingTagURL(string(annotation.ID)),
		HxPrivacyURL:    routes.AnnotationPrivacyURL(string(annotation.ID)),
		HxKeyURL:        routes.AnnotationKeyURL(string(annotation.ID)),
		HxDraftURL:      routes.AnnotationDraftURL(string(annotation.ID)),
	}
}
