package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Reader provides access to the contents of one EPUB archive. It exposes the
// raw material the normalization pipeline works from: ordered metadata pairs,
// the resource manifest, the reading order and the navigation tree.
type Reader struct {
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
	path      string
	opfPath   string
	pkg       *Package
	nav       []NavPoint
}

// container.xml structure
type container struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

// Open opens an EPUB file, validates its structure and parses the package
// document. Failures are reported as *OpenError: FailureIO when the archive
// cannot be read, FailureParse when it is readable but structurally invalid.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ioError(path, err)
	}

	r := &Reader{
		zipReader: zr,
		files:     make(map[string]*zip.File),
		path:      path,
	}

	for _, f := range zr.File {
		r.files[normalizePath(f.Name)] = f
	}

	if err := r.validateMimetype(); err != nil {
		zr.Close()
		return nil, parseError(path, err)
	}

	if err := r.parseContainer(); err != nil {
		zr.Close()
		return nil, parseError(path, err)
	}

	opfData, err := r.ReadFile(r.opfPath)
	if err != nil {
		zr.Close()
		return nil, parseError(path, err)
	}

	pkg, err := ParseOPF(opfData, filepath.Dir(r.opfPath))
	if err != nil {
		zr.Close()
		return nil, parseError(path, err)
	}
	r.pkg = pkg

	// Missing or broken navigation data is not an error; the book simply
	// has an empty table of contents.
	r.nav = r.loadNavigation()

	return r, nil
}

// Close closes the underlying archive.
func (r *Reader) Close() error {
	return r.zipReader.Close()
}

// Path returns the path the archive was opened from.
func (r *Reader) Path() string {
	return r.path
}

// OPFPath returns the archive-internal path of the package document.
func (r *Reader) OPFPath() string {
	return r.opfPath
}

// RawMetadata returns the package metadata as ordered (property, value) pairs.
func (r *Reader) RawMetadata() []MetadataPair {
	return r.pkg.RawMetadata
}

// Title returns the first declared package title.
func (r *Reader) Title() (string, bool) {
	if len(r.pkg.Titles) == 0 || r.pkg.Titles[0] == "" {
		return "", false
	}
	return r.pkg.Titles[0], true
}

// ReleaseIdentifier returns the identifier named by the package
// unique-identifier attribute, when one is declared and resolvable.
func (r *Reader) ReleaseIdentifier() (string, bool) {
	if r.pkg.ReleaseID == "" {
		return "", false
	}
	return r.pkg.ReleaseID, true
}

// Resources returns the manifest, keyed by resource id.
func (r *Reader) Resources() map[string]Resource {
	return r.pkg.Manifest
}

// ReadingOrder returns the spine: resource ids in declared reading order.
// Ids may reference entries missing from the manifest; callers skip those.
func (r *Reader) ReadingOrder() []string {
	return r.pkg.Spine
}

// NavigationTree returns the parsed table-of-contents source data. The slice
// is empty when the archive declares no usable navigation document.
func (r *Reader) NavigationTree() []NavPoint {
	return r.nav
}

// FragmentText returns the raw markup of a manifest resource. The second
// return value is false when the id is unknown or the file cannot be read.
func (r *Reader) FragmentText(id string) (string, bool) {
	res, ok := r.pkg.Manifest[id]
	if !ok {
		return "", false
	}
	data, err := r.ReadFile(res.Href)
	if err != nil {
		return "", false
	}
	return string(stripBOM(data)), true
}

// ReadFile reads the contents of a file from the archive.
func (r *Reader) ReadFile(path string) ([]byte, error) {
	path = normalizePath(path)
	f, ok := r.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// loadNavigation parses the NCX document named by the spine toc attribute,
// falling back to the EPUB 3 nav document. Best effort: any failure yields
// an empty tree.
func (r *Reader) loadNavigation() []NavPoint {
	if r.pkg.NCXPath != "" {
		if data, err := r.ReadFile(r.pkg.NCXPath); err == nil {
			if points, err := ParseNCX(data, filepath.Dir(r.pkg.NCXPath)); err == nil && len(points) > 0 {
				return points
			}
		}
	}
	if r.pkg.NavPath != "" {
		if data, err := r.ReadFile(r.pkg.NavPath); err == nil {
			if points, err := ParseNav(data, filepath.Dir(r.pkg.NavPath)); err == nil {
				return points
			}
		}
	}
	return nil
}

// validateMimetype checks that the mimetype file exists, is stored without
// compression, and declares the EPUB media type.
func (r *Reader) validateMimetype() error {
	f, ok := r.files["mimetype"]
	if !ok {
		return ErrMimetypeNotFound
	}

	if f.Method != zip.Store {
		return ErrMimetypeCompressed
	}

	content, err := r.ReadFile("mimetype")
	if err != nil {
		return fmt.Errorf("failed to read mimetype: %w", err)
	}

	if string(content) != "application/epub+zip" {
		return ErrInvalidMimetype
	}

	return nil
}

// parseContainer parses container.xml to extract the OPF path.
func (r *Reader) parseContainer() error {
	content, err := r.ReadFile("META-INF/container.xml")
	if err != nil {
		return ErrContainerNotFound
	}

	var c container
	if err := xml.Unmarshal(content, &c); err != nil {
		return fmt.Errorf("failed to parse container.xml: %w", err)
	}

	for _, rf := range c.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			r.opfPath = normalizePath(rf.FullPath)
			return nil
		}
	}

	if len(c.Rootfiles.Rootfile) > 0 {
		r.opfPath = normalizePath(c.Rootfiles.Rootfile[0].FullPath)
		return nil
	}

	return ErrOPFPathNotFound
}

// normalizePath normalizes file paths (removes ./ prefix)
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "./")
}

// stripBOM removes a leading UTF-8 byte order mark.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
