package support

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// appConfigAttr returns the data-app-config attribute of the page's <body>
// element, which carries the portal's JSON configuration blob.
func appConfigAttr(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		return "", fmt.Errorf("page has no body element")
	}
	for _, attr := range body.Attr {
		if attr.Key == "data-app-config" {
			return attr.Val, nil
		}
	}
	return "", fmt.Errorf("body has no data-app-config attribute")
}

// hiddenInputValue returns the value attribute of the <input> element with
// the given name.
func hiddenInputValue(page []byte, name string) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	input := findInput(doc, name)
	if input == nil {
		return "", fmt.Errorf("no input named %q", name)
	}
	for _, attr := range input.Attr {
		if attr.Key == "value" {
			return attr.Val, nil
		}
	}
	return "", fmt.Errorf("input %q has no value", name)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func findInput(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "input" {
		for _, attr := range n.Attr {
			if attr.Key == "name" && attr.Val == name {
				return n
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findInput(child, name); found != nil {
			return found
		}
	}
	return nil
}
