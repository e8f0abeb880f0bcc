// Command seed loads the demo catalog and the admin account into an empty
// database. It is idempotent: tables that already hold rows are left alone.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/config"
	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/logger"
	"github.com/atelierhq/storefront-backend/pkg/security"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	conn := dbClient.DB()

	if err := seedCategories(conn); err != nil {
		logg.Error(ctx, "failed to seed categories", err)
		os.Exit(1)
	}
	if err := seedProducts(conn); err != nil {
		logg.Error(ctx, "failed to seed products", err)
		os.Exit(1)
	}
	if err := seedAdmin(conn, cfg.Password); err != nil {
		logg.Error(ctx, "failed to seed admin user", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed complete")
}

func seedCategories(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "فساتين سهرة", Description: "فساتين أنيقة للمناسبات الخاصة والحفلات", ImageURL: "https://via.placeholder.com/200x150?text=فساتين+سهرة", IsActive: true, SortOrder: 1},
		{Name: "ملابس تراثية", Description: "ملابس تراثية أصيلة ومطرزة بالطريقة التقليدية", ImageURL: "https://via.placeholder.com/200x150?text=ملابس+تراثية", IsActive: true, SortOrder: 2},
		{Name: "ملابس أطفال", Description: "ملابس مريحة وجميلة للأطفال من جميع الأعمار", ImageURL: "https://via.placeholder.com/200x150?text=ملابس+أطفال", IsActive: true, SortOrder: 3},
		{Name: "عبايات", Description: "عبايات عصرية وكلاسيكية بتصاميم راقية", ImageURL: "https://via.placeholder.com/200x150?text=عبايات", IsActive: true, SortOrder: 4},
		{Name: "فساتين زفاف", Description: "فساتين زفاف فاخرة لليلة العمر", ImageURL: "https://via.placeholder.com/200x150?text=فساتين+زفاف", IsActive: true, SortOrder: 5},
		{Name: "ملابس محجبات", Description: "أزياء عصرية مناسبة للمحجبات", ImageURL: "https://via.placeholder.com/200x150?text=ملابس+محجبات", IsActive: true, SortOrder: 6},
	}
	return conn.Create(&categories).Error
}

func seedProducts(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	discount := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	category := func(id uint) *uint { return &id }

	products := []models.Product{
		{
			Name:             "فستان سهرة راقي مطرز",
			Description:      "فستان سهرة أنيق مصنوع من الساتان الفاخر مع تطريز يدوي راقي، مناسب للمناسبات الخاصة والحفلات الراقية",
			Price:            price(1200),
			DiscountPrice:    discount(950),
			CategoryID:       category(1),
			ImageURL:         "https://via.placeholder.com/400x500?text=فستان+سهرة+راقي",
			InStock:          true,
			StockQuantity:    5,
			IsFeatured:       true,
			IsActive:         true,
			Sizes:            []string{"S", "M", "L", "XL"},
			Colors:           []string{"أحمر", "أسود", "أزرق ملكي", "ذهبي"},
			Material:         "ساتان فاخر مع تطريز يدوي",
			CareInstructions: "تنظيف جاف فقط",
			DeliveryTime:     "7-10 أيام عمل",
		},
		{
			Name:             "جلباب تراثي مطرز بالخيوط الذهبية",
			Description:      "جلباب تراثي أصيل مطرز بالخيوط الذهبية والفضية، يجمع بين الأصالة والعصرية في تصميم راقي",
			Price:            price(800),
			CategoryID:       category(2),
			ImageURL:         "https://via.placeholder.com/400x500?text=جلباب+تراثي",
			InStock:          true,
			StockQuantity:    8,
			IsFeatured:       true,
			IsActive:         true,
			Sizes:            []string{"S", "M", "L", "XL", "XXL"},
			Colors:           []string{"أسود", "كحلي", "بني", "أخضر داكن"},
			Material:         "قطن مخلوط مع تطريز ذهبي",
			CareInstructions: "غسيل يدوي بماء بارد",
			DeliveryTime:     "5-7 أيام عمل",
		},
		{
			Name:             "فستان أطفال ملون بتصميم الأميرات",
			Description:      "فستان أطفال بألوان زاهية ومرحة مع تصميم الأميرات، مصنوع من القطن الطبيعي المريح والآمن للأطفال",
			Price:            price(350),
			DiscountPrice:    discount(280),
			CategoryID:       category(3),
			ImageURL:         "https://via.placeholder.com/400x500?text=فستان+أطفال",
			InStock:          true,
			StockQuantity:    12,
			IsActive:         true,
			Sizes:            []string{"2-3 سنوات", "4-5 سنوات", "6-7 سنوات", "8-9 سنوات"},
			Colors:           []string{"وردي", "أزرق فاتح", "أصفر", "بنفسجي"},
			Material:         "قطن طبيعي 100%",
			CareInstructions: "غسيل عادي في الغسالة",
			DeliveryTime:     "3-5 أيام عمل",
		},
		{
			Name:             "عباية عصرية بقصة مودرن",
			Description:      "عباية عصرية بتصميم مودرن وأنيق مع تفاصيل راقية، مناسبة لجميع المناسبات اليومية والرسمية",
			Price:            price(550),
			CategoryID:       category(4),
			ImageURL:         "https://via.placeholder.com/400x500?text=عباية+عصرية",
			InStock:          true,
			StockQuantity:    15,
			IsFeatured:       true,
			IsActive:         true,
			Sizes:            []string{"S", "M", "L", "XL", "XXL"},
			Colors:           []string{"أسود", "كحلي", "رمادي", "بيج"},
			Material:         "كريب مطاطي عالي الجودة",
			CareInstructions: "غسيل عادي أو تنظيف جاف",
			DeliveryTime:     "3-5 أيام عمل",
		},
		{
			Name:             "فستان زفاف فاخر بتطريز اللؤلؤ",
			Description:      "فستان زفاف حالم بتصميم كلاسيكي فاخر، مطرز بالخرز واللؤلؤ الطبيعي مع ذيل طويل أنيق",
			Price:            price(3500),
			DiscountPrice:    discount(2800),
			CategoryID:       category(5),
			ImageURL:         "https://via.placeholder.com/400x500?text=فستان+زفاف",
			InStock:          true,
			StockQuantity:    3,
			IsFeatured:       true,
			IsActive:         true,
			Sizes:            []string{"XS", "S", "M", "L", "XL"},
			Colors:           []string{"أبيض", "أبيض مكسور", "شامبين"},
			Material:         "ساتان وتول مع تطريز لؤلؤ طبيعي",
			CareInstructions: "تنظيف جاف متخصص فقط",
			DeliveryTime:     "14-21 يوم عمل",
		},
		{
			Name:             "فستان محجبات أنيق وعملي",
			Description:      "فستان طويل مناسب للمحجبات، بتصميم عصري ومريح مع أكمام طويلة وقصة مناسبة",
			Price:            price(480),
			CategoryID:       category(6),
			ImageURL:         "https://via.placeholder.com/400x500?text=فستان+محجبات",
			InStock:          true,
			StockQuantity:    20,
			IsActive:         true,
			Sizes:            []string{"S", "M", "L", "XL", "XXL"},
			Colors:           []string{"كحلي", "بني", "أخضر", "بنفسجي", "رمادي"},
			Material:         "جيرسي قطني مريح",
			CareInstructions: "غسيل عادي في الغسالة",
			DeliveryTime:     "3-5 أيام عمل",
		},
	}
	return conn.Create(&products).Error
}

func seedAdmin(conn *gorm.DB, passwordCfg config.PasswordConfig) error {
	var count int64
	if err := conn.Model(&models.User{}).Where("email = ?", "admin@ummohamed.com").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword("admin123", passwordCfg)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "إدارة أم محمد",
		Email:        "admin@ummohamed.com",
		Phone:        "0123456789",
		PasswordHash: hash,
		IsAdmin:      true,
		IsActive:     true,
	}
	return conn.Create(&admin).Error
}
