package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	soundDir = "sounds/"
	logoDir  = "logo/"
)

// AppIcon is the file name of the application icon.
const AppIcon = "icon.png"

//go:embed sounds/*.wav
var soundFS embed.FS

//go:embed logo/*.png
var logoFS embed.FS

var soundCache sync.Map
var logoCache sync.Map

// Sound returns the embedded WAV data for the given sound file.
func Sound(fileName string) ([]byte, error) {
	path := soundDir + fileName
	if cached, ok := soundCache.Load(path); ok {
		return cached.([]byte), nil
	}
	data, err := soundFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", path, err)
	}
	soundCache.Store(path, data)
	return data, nil
}

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	path := logoDir + fileName
	if cached, ok := logoCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	logoCache.Store(path, resource)
	return resource, nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}
