package catalog

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductRepository_Create(t *testing.T) {
	t.Run("assigns a fresh id and keeps the fields", func(t *testing.T) {
		repo := NewProductRepository()

		p, err := repo.Create("Laptop", "Gaming Laptop", decimal.NewFromInt(1200))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID == "" {
			t.Fatal("expected id to be set")
		}

		got, ok := repo.Get(p.ID)
		if !ok {
			t.Fatal("expected product to be stored")
		}
		if !reflect.DeepEqual(got, p) {
			t.Errorf("stored product differs: %+v vs %+v", got, p)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := NewProductRepository()

		if _, err := repo.Create("  ", "", decimal.Zero); !errors.Is(err, ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
		if _, err := repo.Create("Laptop", "", decimal.NewFromInt(-5)); !errors.Is(err, ErrNegativePrice) {
			t.Errorf("expected ErrNegativePrice, got %v", err)
		}
		if len(repo.List()) != 0 {
			t.Error("rejected products must not be stored")
		}
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		repo := NewProductRepository()
		if _, err := repo.Create("Sticker", "", decimal.Zero); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent creates never collide", func(t *testing.T) {
		repo := NewProductRepository()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.Create("Item", "", decimal.NewFromInt(1))
			}()
		}
		wg.Wait()

		seen := make(map[string]bool)
		for _, p := range repo.List() {
			if seen[p.ID] {
				t.Fatalf("duplicate id %s", p.ID)
			}
			seen[p.ID] = true
		}
		if len(seen) != 50 {
			t.Errorf("expected 50 products, got %d", len(seen))
		}
	})
}

func TestProductRepository_List(t *testing.T) {
	repo := NewProductRepository(DefaultProducts()...)
	if _, err := repo.Create("Tablet", "", decimal.NewFromInt(300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := repo.List()
	second := repo.List()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("listing twice without writes must be identical:\n%+v\n%+v", first, second)
	}

	names := []string{first[0].Name, first[1].Name, first[2].Name}
	if !reflect.DeepEqual(names, []string{"Laptop", "Smartphone", "Tablet"}) {
		t.Errorf("expected creation order, got %v", names)
	}

	first[0].Name = "mutated"
	if got, _ := repo.Get("1"); got.Name != "Laptop" {
		t.Error("list must return copies")
	}
}

func TestProductRepository_GetUnknown(t *testing.T) {
	repo := NewProductRepository(DefaultProducts()...)
	if _, ok := repo.Get("nope"); ok {
		t.Error("expected unknown id to be absent")
	}
}
