package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// UnknownLabel is reported for elements with no text, aria-label, or
// placeholder to derive a label from.
const UnknownLabel = "Unknown"

// FirstText returns the trimmed text content of the first visible element
// matching the selector. found is false when no matching element is visible,
// which is a normal outcome rather than an error.
func (s *Session) FirstText(selector string) (text string, found bool, err error) {
	loc := s.Page.Locator(selector).First()

	visible, err := loc.IsVisible()
	if err != nil {
		return "", false, fmt.Errorf("visibility check failed for %q: %w", selector, err)
	}
	if !visible {
		return "", false, nil
	}

	content, err := loc.TextContent()
	if err != nil {
		return "", false, fmt.Errorf("text extraction failed for %q: %w", selector, err)
	}
	return strings.TrimSpace(content), true, nil
}

// Elements describes up to max elements matching the selector. Hidden
// matches are skipped but still consume a slot, so this is a scan over the
// first max matches rather than the first max visible ones.
func (s *Session) Elements(selector string, max int) ([]ElementInfo, error) {
	loc := s.Page.Locator(selector)

	count, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("count failed for %q: %w", selector, err)
	}
	if count > max {
		count = max
	}

	infos := make([]ElementInfo, 0, count)
	for i := 0; i < count; i++ {
		el := loc.Nth(i)

		visible, err := el.IsVisible()
		if err != nil {
			return nil, fmt.Errorf("visibility check failed for %q[%d]: %w", selector, i, err)
		}
		if !visible {
			continue
		}

		info, err := describeElement(el)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// Texts returns the trimmed, non-empty text contents of up to max elements
// matching the selector.
func (s *Session) Texts(selector string, max int) ([]string, error) {
	loc := s.Page.Locator(selector)

	count, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("count failed for %q: %w", selector, err)
	}
	if count > max {
		count = max
	}

	texts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		content, err := loc.Nth(i).TextContent()
		if err != nil {
			return nil, fmt.Errorf("text extraction failed for %q[%d]: %w", selector, i, err)
		}
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			texts = append(texts, trimmed)
		}
	}

	return texts, nil
}

// describeElement derives an ElementInfo from a single locator: the lowercase
// tag name plus a label taken from text content, aria-label, or placeholder,
// in that order.
func describeElement(el playwright.Locator) (ElementInfo, error) {
	tagRaw, err := el.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return ElementInfo{}, fmt.Errorf("tag name lookup failed: %w", err)
	}
	tag, _ := tagRaw.(string)

	label := ""
	if text, err := el.TextContent(); err == nil {
		label = strings.TrimSpace(text)
	}
	if label == "" {
		if aria, err := el.GetAttribute("aria-label"); err == nil {
			label = strings.TrimSpace(aria)
		}
	}
	if label == "" {
		if placeholder, err := el.GetAttribute("placeholder"); err == nil {
			label = strings.TrimSpace(placeholder)
		}
	}
	if label == "" {
		label = UnknownLabel
	}

	return ElementInfo{Tag: tag, Label: label}, nil
}

// TruncateLabel shortens a label to at most max runes, appending an ellipsis
// marker when anything was cut. Safe on multi-byte text.
func TruncateLabel(label string, max int) string {
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max]) + "..."
}
