package epub

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
)

const dcNamespace = "http://purl.org/dc/elements/1.1/"

// MetadataPair is one raw (property, value) pair from the package metadata,
// in document order. Properties keep their namespace prefix, e.g. "dc:title"
// for Dublin Core elements and the declared name for meta elements.
type MetadataPair struct {
	Property string
	Value    string
}

// Resource is one manifest entry: a file inside the archive.
type Resource struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// Package holds everything parsed out of the OPF document: raw metadata in
// document order, the resource manifest, the spine, and the paths needed to
// locate the navigation data.
type Package struct {
	RawMetadata []MetadataPair
	Titles      []string
	ReleaseID   string
	Manifest    map[string]Resource
	Spine       []string
	NCXPath     string
	NavPath     string
	CoverID     string
}

// opfPackage mirrors the OPF XML structure.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// opfMetadata collects metadata children as ordered raw pairs. The stock
// struct unmarshaler groups elements by name and loses document order, so it
// walks the tokens itself.
type opfMetadata struct {
	Pairs       []MetadataPair
	Titles      []string
	Identifiers []opfIdentifier
	CoverID     string
}

type opfIdentifier struct {
	Value string
	ID    string
}

func (m *opfMetadata) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := m.element(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

func (m *opfMetadata) element(d *xml.Decoder, start xml.StartElement) error {
	local := strings.ToLower(start.Name.Local)

	if start.Name.Space == dcNamespace {
		var el struct {
			Value string `xml:",chardata"`
			ID    string `xml:"id,attr"`
		}
		if err := d.DecodeElement(&el, &start); err != nil {
			return err
		}
		value := strings.TrimSpace(el.Value)
		m.Pairs = append(m.Pairs, MetadataPair{Property: "dc:" + local, Value: value})
		switch local {
		case "identifier":
			m.Identifiers = append(m.Identifiers, opfIdentifier{Value: value, ID: el.ID})
		case "title":
			m.Titles = append(m.Titles, value)
		}
		return nil
	}

	if local == "meta" {
		var el struct {
			Name     string `xml:"name,attr"`
			Content  string `xml:"content,attr"`
			Property string `xml:"property,attr"`
			Refines  string `xml:"refines,attr"`
			Value    string `xml:",chardata"`
		}
		if err := d.DecodeElement(&el, &start); err != nil {
			return err
		}
		switch {
		case el.Name != "":
			// EPUB 2 style: <meta name="..." content="..."/>
			m.Pairs = append(m.Pairs, MetadataPair{Property: el.Name, Value: el.Content})
			if el.Name == "cover" && m.CoverID == "" {
				m.CoverID = el.Content
			}
		case el.Property != "" && el.Refines == "":
			// EPUB 3 style: <meta property="...">value</meta>. Refining
			// meta elements describe other elements, not the package.
			m.Pairs = append(m.Pairs, MetadataPair{Property: el.Property, Value: strings.TrimSpace(el.Value)})
		}
		return nil
	}

	return d.Skip()
}

// ParseOPF parses an OPF document. opfDir is the directory containing the
// OPF file; manifest hrefs are resolved against it.
func ParseOPF(content []byte, opfDir string) (*Package, error) {
	var pkg opfPackage
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse OPF XML: %w", err)
	}

	p := &Package{
		RawMetadata: pkg.Metadata.Pairs,
		Titles:      pkg.Metadata.Titles,
		Manifest:    make(map[string]Resource),
		CoverID:     pkg.Metadata.CoverID,
	}

	// The release identifier is the dc:identifier matched by the package
	// unique-identifier attribute.
	if pkg.UniqueID != "" {
		for _, id := range pkg.Metadata.Identifiers {
			if id.ID == pkg.UniqueID {
				p.ReleaseID = id.Value
				break
			}
		}
	}

	for _, item := range pkg.Manifest.Items {
		res := Resource{
			ID:        item.ID,
			Href:      joinPath(opfDir, item.Href),
			MediaType: item.MediaType,
		}
		if item.Properties != "" {
			res.Properties = strings.Fields(item.Properties)
		}
		p.Manifest[item.ID] = res

		for _, prop := range res.Properties {
			if prop == "nav" && p.NavPath == "" {
				p.NavPath = res.Href
			}
		}
	}

	for _, ref := range pkg.Spine.ItemRefs {
		p.Spine = append(p.Spine, ref.IDRef)
	}

	if pkg.Spine.Toc != "" {
		if ncxItem, ok := p.Manifest[pkg.Spine.Toc]; ok {
			p.NCXPath = ncxItem.Href
		}
	}

	return p, nil
}

// joinPath joins the OPF directory with a manifest-relative path.
func joinPath(base, rel string) string {
	if base == "" || base == "." {
		return rel
	}
	return filepath.ToSlash(filepath.Join(base, rel))
}
