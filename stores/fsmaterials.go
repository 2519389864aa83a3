package stores

import (
	"os"
	"path/filepath"
	"sort"

	aulakit "github.com/aulakit/aulakit"
)

// FSMaterialStore stores lesson materials as JSON files named by row
// ID.
type FSMaterialStore struct {
	StoragePath string
}

func NewFSMaterialStore(storagePath string) *FSMaterialStore {
	return &FSMaterialStore{StoragePath: storagePath}
}

func (s *FSMaterialStore) getMaterialPath(id string) string {
	return filepath.Join(s.StoragePath, "materials", id+".json")
}

func (s *FSMaterialStore) MaterialsForLesson(lessonID string) ([]*aulakit.LessonMaterial, error) {
	materials := []*aulakit.LessonMaterial{}
	err := eachJSON(filepath.Join(s.StoragePath, "materials"), func(path string) error {
		var m aulakit.LessonMaterial
		if err := loadJSON(path, &m); err != nil {
			return err
		}
		if m.LessonID == lessonID {
			materials = append(materials, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].OrderIndex < materials[j].OrderIndex
	})
	return materials, nil
}

func (s *FSMaterialStore) SaveMaterial(m *aulakit.LessonMaterial) error {
	return saveJSON(s.getMaterialPath(m.ID), m)
}

func (s *FSMaterialStore) DeleteMaterial(id string) error {
	err := os.Remove(s.getMaterialPath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
