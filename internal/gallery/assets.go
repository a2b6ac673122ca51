package gallery

// AssetSink receives the stylesheets and scripts a page needs for its galleries.
type AssetSink interface {
	// RegisterAsset records a named stylesheet/script pair. Registering a known name is a no-op.
	RegisterAsset(name, styleURL, scriptURL string)
	HasAsset(name string) bool
	// UseAsset marks a registered asset for inclusion on the page. It is idempotent.
	UseAsset(name string)
	AddInlineStyle(css string)
	AddInlineScript(js string)
}

const (
	LightboxAsset = "glightbox"

	DefaultLightboxStyleURL  = "https://cdn.jsdelivr.net/npm/glightbox/dist/css/glightbox.min.css"
	DefaultLightboxScriptURL = "https://cdn.jsdelivr.net/npm/glightbox/dist/js/glightbox.min.js"
)

const lightboxInitScript = "document.addEventListener('DOMContentLoaded',function(){ if(window.GLightbox){ GLightbox({selector:'." + LightboxClass + "'}); }});"

const galleryStyles = `.` + ContainerClass + ` .thumb{aspect-ratio:1/1;overflow:hidden;border-radius:.5rem;
  min-width:var(--thumb-min-w, initial);
  max-width:var(--thumb-max-w, none);
  min-height:var(--thumb-min-h, initial);
  max-height:var(--thumb-max-h, none);
}
.` + ContainerClass + ` img{
  width:var(--img-width, 100%);
  height:var(--img-height, 100%);
  display:block;
  object-fit:cover;
  transition:transform .18s ease;
}
.` + ContainerClass + ` a:hover img,.` + ContainerClass + ` .gallery-item:hover img{transform:scale(1.03);}`
