package utils

import (
	"bytes"
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownKind selects how much markup a piece of content may carry.
type MarkdownKind int

const (
	// StoryMarkdown allows images and video embeds.
	StoryMarkdown MarkdownKind = iota
	// CommentMarkdown keeps replies to inline text, links, lists and code.
	CommentMarkdown
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)

	storyPolicy   = bluemonday.UGCPolicy()
	commentPolicy = bluemonday.NewPolicy()

	// @0x mentions of a full wallet address.
	mentionRe = regexp.MustCompile(`(^|[^\w/\[])@(0x[0-9a-fA-F]{40})\b`)
)

func init() {
	storyPolicy.AllowImages()
	storyPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	storyPolicy.RequireNoReferrerOnLinks(true)

	commentPolicy.AllowStandardURLs()
	commentPolicy.AllowElements("p", "br", "strong", "em", "del", "code", "pre", "blockquote", "ul", "ol", "li")
	commentPolicy.AllowAttrs("href").OnElements("a")
	commentPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w-]+$`)).OnElements("code")
	commentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	commentPolicy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts user supplied Markdown to sanitized HTML ready to be
// embedded by the mini app. Wallet mentions link to the user's profile. On
// conversion failure the escaped source is returned.
func RenderMarkdown(source string, kind MarkdownKind) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(linkMentions(source)), &buf); err != nil {
		return html.EscapeString(source)
	}

	if kind == CommentMarkdown {
		return commentPolicy.Sanitize(buf.String())
	}
	return EnhanceHTMLContent(storyPolicy.Sanitize(buf.String()))
}

// linkMentions turns "@0xabc…" into a Markdown link to /users/<address>,
// labelled with the shortened address.
func linkMentions(source string) string {
	return mentionRe.ReplaceAllStringFunc(source, func(m string) string {
		sub := mentionRe.FindStringSubmatch(m)
		addr := sub[2]
		return sub[1] + "[@" + ShortAddress(addr) + "](/users/" + addr + ")"
	})
}

// ShortAddress renders 0x527f…3edb style labels.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
