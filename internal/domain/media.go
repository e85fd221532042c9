package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

type Category string

const (
	CategoryPosts   Category = "posts"
	CategoryStories Category = "stories"
	CategoryProfile Category = "profile"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPosts, CategoryStories, CategoryProfile:
		return true
	}
	return false
}

// Profile artifacts owned by the profile store. The blob API never reads or writes them.
const (
	PasswordFile = "password.json"
	UsernameFile = "username.txt"
)

// IsReservedProfileFile reports whether filename in category belongs to the profile store.
func IsReservedProfileFile(category Category, filename string) bool {
	return category == CategoryProfile &&
		(strings.EqualFold(filename, PasswordFile) || strings.EqualFold(filename, UsernameFile))
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaOther MediaType = "other"
)

var imageExt = regexp.MustCompile(`(?i)\.(png|jpe?g|gif)$`)

// MediaTypeOf sniffs a filename extension the way the feed filter does.
func MediaTypeOf(filename string) MediaType {
	switch {
	case imageExt.MatchString(filename):
		return MediaImage
	case strings.HasSuffix(filename, ".mp4"):
		return MediaVideo
	}
	return MediaOther
}

// StoryTypeOf treats everything that is not an .mp4 as an image.
func StoryTypeOf(filename string) MediaType {
	if strings.HasSuffix(filename, ".mp4") {
		return MediaVideo
	}
	return MediaImage
}

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
}

// ContentType infers a MIME type from the filename extension.
func ContentType(filename string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// MediaURL is the API path serving a decrypted blob.
func MediaURL(wallet string, category Category, filename string) string {
	return "/api/media/" + wallet + "/" + string(category) + "/" + filename
}
