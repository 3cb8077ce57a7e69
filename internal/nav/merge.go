package nav

import (
	"log/slog"
)

// Merge combines the incoming document into d. Containers and groups match by
// exact label equality at each level; matched groups merge recursively,
// unmatched ones append as new siblings. Page identifiers already present by
// string equality are not appended again, so merging the same source twice is
// a no-op for labeled content.
//
// Groups with an empty label never match each other: they pass through
// unmatched and are reported informationally. Collapsing them would guess at
// intent, so indistinguishable unlabeled siblings are preserved as-is.
func (d *Document) Merge(in *Document) {
	if in == nil {
		return
	}
	d.Pages = mergePages(d.Pages, in.Pages)
	for _, t := range in.Tabs {
		if base := findTab(d.Tabs, t.Tab); base != nil {
			base.Pages = mergePages(base.Pages, t.Pages)
			continue
		}
		d.Tabs = append(d.Tabs, t)
	}
	for _, a := range in.Anchors {
		if base := findAnchor(d.Anchors, a.Anchor); base != nil {
			base.Pages = mergePages(base.Pages, a.Pages)
			continue
		}
		d.Anchors = append(d.Anchors, a)
	}
	for _, dd := range in.Dropdowns {
		if base := findDropdown(d.Dropdowns, dd.Dropdown); base != nil {
			base.Pages = mergePages(base.Pages, dd.Pages)
			continue
		}
		d.Dropdowns = append(d.Dropdowns, dd)
	}
	for _, p := range in.Products {
		if base := findProduct(d.Products, p.Product); base != nil {
			base.Pages = mergePages(base.Pages, p.Pages)
			continue
		}
		d.Products = append(d.Products, p)
	}
	for _, l := range in.Languages {
		if base := findLanguage(d.Languages, l.Language); base != nil {
			base.Pages = mergePages(base.Pages, l.Pages)
			continue
		}
		d.Languages = append(d.Languages, l)
	}
	for _, v := range in.Versions {
		if base := findVersion(d.Versions, v.Version); base != nil {
			base.Pages = mergePages(base.Pages, v.Pages)
			continue
		}
		d.Versions = append(d.Versions, v)
	}
}

// mergePages merges incoming entries into base, preserving base order and
// appending new entries in incoming order.
func mergePages(base, in []Page) []Page {
	for _, entry := range in {
		if !entry.IsGroup() {
			if !hasPageID(base, entry.ID) {
				base = append(base, entry)
			}
			continue
		}
		g := entry.Group
		if g.Group == "" {
			// Unlabeled groups never match; preserved as indistinguishable
			// siblings rather than collapsed.
			slog.Info("Unlabeled navigation group passed through merge unmatched",
				slog.Int("pages", len(g.Pages)))
			base = append(base, entry)
			continue
		}
		if existing := findGroup(base, g.Group); existing != nil {
			mergeGroup(existing, g)
			continue
		}
		base = append(base, entry)
	}
	return base
}

func mergeGroup(base, in *Group) {
	base.Pages = mergePages(base.Pages, in.Pages)
	if base.Icon == nil {
		base.Icon = in.Icon
	}
	if base.Tag == "" {
		base.Tag = in.Tag
	}
}

func hasPageID(pages []Page, id string) bool {
	for _, p := range pages {
		if !p.IsGroup() && p.ID == id {
			return true
		}
	}
	return false
}

func findGroup(pages []Page, label string) *Group {
	for i := range pages {
		if pages[i].IsGroup() && pages[i].Group.Group == label {
			return pages[i].Group
		}
	}
	return nil
}

func findTab(tabs []Tab, label string) *Tab {
	for i := range tabs {
		if tabs[i].Tab == label {
			return &tabs[i]
		}
	}
	return nil
}

func findAnchor(anchors []Anchor, label string) *Anchor {
	for i := range anchors {
		if anchors[i].Anchor == label {
			return &anchors[i]
		}
	}
	return nil
}

func findDropdown(dropdowns []Dropdown, label string) *Dropdown {
	for i := range dropdowns {
		if dropdowns[i].Dropdown == label {
			return &dropdowns[i]
		}
	}
	return nil
}

func findProduct(products []Product, label string) *Product {
	for i := range products {
		if products[i].Product == label {
			return &products[i]
		}
	}
	return nil
}

func findLanguage(languages []Language, label string) *Language {
	for i := range languages {
		if languages[i].Language == label {
			return &languages[i]
		}
	}
	return nil
}

func findVersion(versions []Version, label string) *Version {
	for i := range versions {
		if versions[i].Version == label {
			return &versions[i]
		}
	}
	return nil
}
