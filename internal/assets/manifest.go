// Package assets maintains the local cache of GitLab static assets that
// rendered markdown pages reference.
package assets

// DirName is the subdirectory of the cache directory (and the reserved URL
// prefix, under "/") that asset files live in.
const DirName = "_gitlab_assets"

// Manifest lists the GitLab assets a rendered page depends on. Every
// filename embeds a content hash, so a file that exists locally is known to
// be current and is never re-fetched.
type Manifest struct {
	// CSS stylesheets, linked from the rendered document head in order.
	CSS []string
	// Fonts referenced by the stylesheets, preloaded by the document.
	Fonts []string
	// Other assets (icons, illustrations) referenced from within the
	// stylesheets or rendered HTML.
	Other []string
}

// DefaultManifest returns the asset set for current GitLab releases.
func DefaultManifest() Manifest {
	return Manifest{
		CSS: []string{
			"application-f6b592d2e7570ce5d28f3dbf7170c0b3aa19dcb951f8c9e9ebe6cd5ec44691e8.css",
			"application_utilities-6773fc1499bcdafb1e7241a3b30e1b2f36085ea9e3d80797bab0e321decce6fa.css",
			"fonts-6abb7a7d0ae407e52928fa44bea1731b9df55dabf1099c1eb5c621c0bc1ae7cf.css",
			"highlight/themes/white-73664f1dda219554f74bc7ed1516f1dbd8a89a7095af456e3738626734a5da12.css",
			"page_bundles/tree-84ff27d40d7ca999fb0db1276a53fac19fdb1290e05b4bae9d5c1baf485252b0.css",
		},
		Fonts: []string{
			"gitlab-sans/GitLabSans-9757b224a485f1403ce9f30978395b27d5a330e1f0d0c527fff9c602938eac87.woff2",
			"jetbrains-mono/JetBrainsMono-4169743728db99dd64f52ea045e42a18343f69dfb695a29573cf6a7006da4f30.woff2",
			"jetbrains-mono/JetBrainsMono-Bold-3b11c8d04a8803f99c188a1def6c6ec2566d26c7e7eec8f07e8fac87e8bc67c0.woff2",
			"jetbrains-mono/JetBrainsMono-Italic-0418e064ec340b09a1249d3299fb4ea5b252288250e54cbe9583f1f6b2c49abc.woff2",
			"jetbrains-mono/JetBrainsMono-BoldItalic-c4e50fc8fe8c8b5079f7cde7ea1e00e3869750a5ec41414ffa938d5eea2c6f9b.woff2",
		},
		Other: []string{
			"icon_anchor-297aa9b0225eff3d6d0da74ce042a0ed5575b92aa66b7109a5e060a795b42e36.svg",
			"icons-stacked-34c49d72f3e92e94fff37432f8d93779d166d6f184dfc15fce7fbfd2580e2de8.svg",
			"illustrations/image_comment_light_cursor-c587347a929a56f8b4d78d991607598f69daef0bcc58e972cabcb72ed96663d2.svg",
		},
	}
}

// All returns every asset in the manifest, in download order.
func (m Manifest) All() []string {
	all := make([]string, 0, len(m.CSS)+len(m.Fonts)+len(m.Other))
	all = append(all, m.CSS...)
	all = append(all, m.Fonts...)
	all = append(all, m.Other...)
	return all
}
