package download

// Package download fetches YouTube videos to local files on top of
// github.com/ytget/ytdlp/v2, trying progressively more permissive format
// strategies until one produces a usable file.
