package handlers

import (
	"io"
	"mime/multipart"

	"github.com/ozanyldz/stagepass/internal/storage"
)

func saveUpload(store storage.Store, fh *multipart.FileHeader, field string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return store.Save(data, field, fh.Filename)
}

// formField reports whether the multipart form carried the key at all, so
// partial updates can distinguish "absent" from "set to empty".
func formField(mf *multipart.Form, key string) (string, bool) {
	vals, ok := mf.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
