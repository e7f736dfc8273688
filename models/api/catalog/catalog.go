package catalogapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type ProductView struct {
	ID          uint   `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Marca       string `json:"marca"`
	Imagen      string `json:"imagen"`
	CategoriaID uint   `json:"categoriaId"`
	Categoria   string `json:"categoria,omitempty"`
}

type ProductRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Marca       string `json:"marca"`
	Imagen      string `json:"imagen"`
	CategoriaID uint   `json:"categoriaId"`
}

func (r ProductRequest) Validate() error {
	if strings.TrimSpace(r.Nombre) == "" {
		return errors.New("не указано наименование товара")
	}
	if r.CategoriaID == 0 {
		return errors.New("не указана категория")
	}
	return nil
}

type ProductFilter struct {
	Busqueda  string `query:"busqueda"`
	Categoria uint   `query:"categoria"`
}

type CategoryView struct {
	ID                uint   `json:"id"`
	Nombre            string `json:"nombre"`
	Descripcion       string `json:"descripcion"`
	CantidadProductos int64  `json:"cantidadProductos"`
}

type CategoryRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (r CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Nombre) == "" {
		return errors.New("не указано наименование категории")
	}
	return nil
}
