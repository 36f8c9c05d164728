package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticURLPath  = "/" + StaticLocalDir + "/"

	AnnotationsURLPath    = "/annotations/"
	EditAnnotationURLPath = "/edit/annotation/"

	TemplatesLocalDir = "templates"

	TemplateLayout     = "layout.html"
	TemplateIndex      = "index.html"
	TemplateAnnotation = "annotation.html"
	TemplateEditor     = "editor.html"
	TemplateAuth       = "ed25519_auth.html"

	// Name of the template block executed for the auth page.
	TemplateNameAuth = "ed25519_auth"
)
