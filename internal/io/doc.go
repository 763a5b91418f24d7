// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying and writing
//   - Directory creation
//   - Image resizing and format conversion
//
// # File Operations
//
//	// Copy a file, preserving its permission bits
//	err := ioutils.CopyFile(ctx, "/album/cover.jpg", "/album [V0]/cover.jpg")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/file.txt", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 1000x1000
//	resized, _ := svc.ResizeImage(ctx, imageData, 1000, 1000)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
//
//	// Sniff the MIME type for the APIC frame
//	mime, _ := svc.DetectMIME(imageData)
package ioutils
