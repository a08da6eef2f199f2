package controller

import (
	"context"
	"path/filepath"

	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/pkg/logger"
	"github.com/tair/catalog-mvc/pkg/optional"
)

// ProductService is the product facade the controller drives
type ProductService interface {
	GetProducts(ctx context.Context) ([]dto.ProductDTO, error)
	GetByID(ctx context.Context, id uint) (optional.Optional[dto.ProductDTO], error)
	Add(ctx context.Context, product dto.ProductDTO) error
	Update(ctx context.Context, product dto.ProductDTO) error
	Remove(ctx context.Context, id uint) error
}

// CategoryService supplies the category choices of product forms
type CategoryService interface {
	GetCategories(ctx context.Context) ([]dto.CategoryDTO, error)
}

// WebRoot is the directory static files are served from
type WebRoot string

// ProductsController sequences the product pages: existence checks first,
// then auxiliary data, then the service call or the view.
type ProductsController struct {
	products   ProductService
	categories CategoryService
	files      FileSystem
	webRoot    WebRoot
}

// NewProductsController creates a new products controller
func NewProductsController(products ProductService, categories CategoryService, files FileSystem, webRoot WebRoot) *ProductsController {
	return &ProductsController{
		products:   products,
		categories: categories,
		files:      files,
		webRoot:    webRoot,
	}
}

// Index lists every product
func (c *ProductsController) Index(ctx context.Context) (Result, error) {
	products, err := c.products.GetProducts(ctx)
	if err != nil {
		return Result{}, err
	}
	return View(ViewIndex, products, ViewData{}), nil
}

// Create shows an empty product form
func (c *ProductsController) Create(ctx context.Context) (Result, error) {
	categories, err := c.categories.GetCategories(ctx)
	if err != nil {
		return Result{}, err
	}
	return View(ViewCreate, dto.ProductDTO{}, ViewData{Categories: NewSelectList(categories, 0)}), nil
}

// CreatePost adds the product when valid, otherwise shows the form again
// with the submitted values
func (c *ProductsController) CreatePost(ctx context.Context, product dto.ProductDTO, valid bool) (Result, error) {
	if valid {
		if err := c.products.Add(ctx, product); err != nil {
			return Result{}, err
		}
		return RedirectToAction(ActionIndex), nil
	}
	return c.redisplay(ctx, ViewCreate, product)
}

// Edit shows the form of an existing product
func (c *ProductsController) Edit(ctx context.Context, id optional.Optional[uint]) (Result, error) {
	product, found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return NotFound(), nil
	}

	categories, err := c.categories.GetCategories(ctx)
	if err != nil {
		return Result{}, err
	}
	return View(ViewEdit, product, ViewData{Categories: NewSelectList(categories, product.CategoryID)}), nil
}

// EditPost updates the product when valid, otherwise shows the form again
func (c *ProductsController) EditPost(ctx context.Context, product dto.ProductDTO, valid bool) (Result, error) {
	if valid {
		if err := c.products.Update(ctx, product); err != nil {
			return Result{}, err
		}
		return RedirectToAction(ActionIndex), nil
	}
	return c.redisplay(ctx, ViewEdit, product)
}

// Delete asks for confirmation before removing a product. Callers restrict
// it to administrators.
func (c *ProductsController) Delete(ctx context.Context, id optional.Optional[uint]) (Result, error) {
	product, found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return NotFound(), nil
	}
	return View(ViewDelete, product, ViewData{}), nil
}

// DeleteConfirmed removes the product
func (c *ProductsController) DeleteConfirmed(ctx context.Context, id uint) (Result, error) {
	if err := c.products.Remove(ctx, id); err != nil {
		return Result{}, err
	}
	return RedirectToAction(ActionIndex), nil
}

// Details shows one product and whether its image file is on disk
func (c *ProductsController) Details(ctx context.Context, id optional.Optional[uint]) (Result, error) {
	product, found, err := c.find(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return NotFound(), nil
	}

	exists := c.imageExists(product.Image)
	if !exists {
		logger.Debug(ctx).
			Uint("product_id", product.ID).
			Str("image", product.Image).
			Msg("Product image missing on disk")
	}
	return View(ViewDetails, product, ViewData{ImageExists: exists}), nil
}

// ImagePath is where the image of a product is expected on disk
func (c *ProductsController) ImagePath(image string) string {
	return filepath.Join(string(c.webRoot), "images", filepath.Base(image))
}

func (c *ProductsController) imageExists(image string) bool {
	if image == "" {
		return false
	}
	return c.files.Exists(c.ImagePath(image))
}

// find resolves an optional id to a product. found is false when the id is
// absent or no product matches it.
func (c *ProductsController) find(ctx context.Context, id optional.Optional[uint]) (product dto.ProductDTO, found bool, err error) {
	productID, ok := id.Get()
	if !ok {
		return dto.ProductDTO{}, false, nil
	}

	result, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return dto.ProductDTO{}, false, err
	}

	product, found = result.Get()
	if !found {
		logger.Debug(ctx).Uint("product_id", productID).Msg("Product not found")
	}
	return product, found, nil
}

// redisplay re-renders a rejected form, keeping the submitted product as is
func (c *ProductsController) redisplay(ctx context.Context, view string, product dto.ProductDTO) (Result, error) {
	categories, err := c.categories.GetCategories(ctx)
	if err != nil {
		return Result{}, err
	}
	return View(view, product, ViewData{Categories: NewSelectList(categories, product.CategoryID)}), nil
}
