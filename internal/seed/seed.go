package seed

import (
	"time"

	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/models"
)

// DefaultSettings are the documented out-of-the-box settings; the repository
// normalizes them again on every read.
func DefaultSettings() models.AppSettings {
	return models.AppSettings{
		ID:           1,
		LogoURL:      "https://cdn-icons-png.flaticon.com/512/3022/3022706.png",
		SiteName:     "PharmaCare Plus",
		PrimaryColor: "blue",
		PaymentMethods: []models.PaymentMethod{
			{ID: "cod", Name: "Cash on Delivery", Type: models.PaymentCOD, Enabled: true, Description: "Pay with cash upon receipt of your order."},
			{ID: "card", Name: "Credit/Debit Card", Type: models.PaymentCard, Enabled: true, Description: "Secure online payment via Stripe/Visa/Mastercard."},
			{ID: "paypal", Name: "PayPal", Type: models.PaymentWallet, Enabled: false, Description: "Fast and secure payment using your PayPal account."},
		},
		Hero: models.HeroConfig{
			Title:    "Your Health, Our Priority",
			Subtitle: "Get your medications delivered to your doorstep with the nearest pharmacy locator and trusted professionals.",
			ImageURL: "https://images.unsplash.com/photo-1587854692152-cbe660dbde88?q=80&w=2000",
			CTAText:  "Shop Now",
		},
		Contact: models.ContactConfig{
			Address: "123 Health Avenue, Medical District, New York, NY 10001",
			Phone:   "(555) 123-4567",
			Email:   "support@pharmacareplus.com",
		},
		FooterAboutText: "Your trusted partner in health and wellness. We provide high-quality medicines, health products, and professional care right to your doorstep.",
		CurrencySymbol:  "$",
	}
}

// Run populates an empty database with the starter catalog, stores, pages and
// settings. Existing data is left alone, so it is safe to call on every boot.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []models.Category{
			{Name: "Pain Relief", Slug: "pain-relief", ImageURL: "https://images.unsplash.com/photo-1583337130417-3346a1be7dee?auto=format&fit=crop&q=80&w=400"},
			{Name: "Vitamins & Supplements", Slug: "vitamins", ImageURL: "https://images.unsplash.com/photo-1565071783280-719b01b29912?auto=format&fit=crop&q=80&w=400"},
			{Name: "First Aid", Slug: "first-aid", ImageURL: "https://images.unsplash.com/photo-1603398938378-e54eab446dde?auto=format&fit=crop&q=80&w=400"},
			{Name: "Skin Care", Slug: "skin-care", ImageURL: "https://images.unsplash.com/photo-1585945037805-5fd82c2e60b1?auto=format&fit=crop&q=80&w=400"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		products := []models.Product{
			{
				Name:        "Advanced Pain Relief Gel",
				Description: "Fast-acting gel for muscle and joint pain relief. Contains cooling menthol.",
				Price:       12.99,
				Category:    "Pain Relief",
				Images:      []string{"https://images.unsplash.com/photo-1629198688000-71f23e745b6e?auto=format&fit=crop&q=80&w=400"},
				Stock:       50,
			},
			{
				Name:        "Multi-Vitamin Complex",
				Description: "Complete daily vitamin supplement for overall health and immunity boost.",
				Price:       24.50,
				Category:    "Vitamins & Supplements",
				Images:      []string{"https://images.unsplash.com/photo-1584017911766-d451b3d0e843?auto=format&fit=crop&q=80&w=400"},
				Stock:       100,
			},
			{
				Name:        "Premium Bandages Pack",
				Description: "Assorted sizes of waterproof bandages for cuts and scrapes.",
				Price:       5.99,
				Category:    "First Aid",
				Images:      []string{"https://images.unsplash.com/photo-1583947215259-38e31be8751f?auto=format&fit=crop&q=80&w=400"},
				Stock:       200,
			},
			{
				Name:        "Hydrating Face Cream",
				Description: "Gentle moisturizing cream for sensitive skin with aloe vera.",
				Price:       18.75,
				Category:    "Skin Care",
				Images:      []string{"https://images.unsplash.com/photo-1612817288484-6f916006741a?auto=format&fit=crop&q=80&w=400"},
				Stock:       35,
			},
		}
		if err := db.Create(&products).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Store{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		stores := []models.Store{
			{Name: "PharmaCare Downtown", Address: "123 Main St, Cityville", Phone: "(555) 123-4567", Lat: 40.7128, Lng: -74.0060},
			{Name: "PharmaCare Westside", Address: "456 Oak Ave, Westtown", Phone: "(555) 987-6543", Lat: 34.0522, Lng: -118.2437},
			{Name: "PharmaCare North Hills", Address: "789 Pine Rd, Northville", Phone: "(555) 456-7890", Lat: 41.8781, Lng: -87.6298},
			{Name: "Sameer store", Address: "12 medavakkam", Phone: "(+91)9884917541", Lat: 12.9103105, Lng: 80.1938566},
		}
		if err := db.Create(&stores).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Page{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		updated := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
		pages := []models.Page{
			{Title: "Terms of Service", Slug: "terms-of-service", LastUpdated: updated, Content: termsContent},
			{Title: "Privacy Policy", Slug: "privacy-policy", LastUpdated: updated, Content: privacyContent},
			{Title: "Cookie Policy", Slug: "cookie-policy", LastUpdated: updated, Content: cookieContent},
		}
		if err := db.Create(&pages).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		orders := []models.Order{
			{
				ID:           "ORD-1001",
				CustomerName: "Alice Smith",
				Date:         time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC),
				Items: []models.OrderItem{
					{ProductID: 1, Name: "Advanced Pain Relief Gel", Price: 12.99, Quantity: 1},
					{ProductID: 3, Name: "Premium Bandages Pack", Price: 5.99, Quantity: 2},
				},
				Total:           24.97,
				Status:          models.OrderStatusDelivered,
				ShippingAddress: "123 Maple St, Cityville",
				PaymentMethod:   "card",
			},
			{
				ID:           "ORD-1002",
				CustomerName: "Bob Jones",
				Date:         time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC),
				Items: []models.OrderItem{
					{ProductID: 2, Name: "Multi-Vitamin Complex", Price: 24.50, Quantity: 1},
				},
				Total:           24.50,
				Status:          models.OrderStatusProcessing,
				ShippingAddress: "456 Oak Ave, Westtown",
				PaymentMethod:   "cod",
			},
		}
		if err := db.Create(&orders).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.AppSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		settings := DefaultSettings()
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
	}

	return nil
}

const termsContent = `Welcome to PharmaCare Plus.

1. Acceptance of Terms
By accessing and using this website, you accept and agree to be bound by the terms and provision of this agreement.

2. Use of Services
You agree to use our services for lawful purposes only.

3. Medical Disclaimer
The content on this site is for informational purposes only and is not a substitute for professional medical advice.

4. Prescription Drugs
Valid prescriptions are required for the purchase of certain medication. We reserve the right to verify prescriptions with your healthcare provider.`

const privacyContent = `Your privacy is important to us.

1. Information Collection
We collect information you provide directly to us, such as when you create an account, place an order, or contact customer support.

2. Use of Information
We use the information we collect to process your orders, communicate with you, and improve our services.

3. Data Security
We implement security measures to maintain the safety of your personal information.`

const cookieContent = `This Cookie Policy explains how PharmaCare Plus uses cookies and similar technologies.

1. What are Cookies?
Cookies are small text files that are stored on your device when you visit a website.

2. How We Use Cookies
We use cookies to remember your login status and process items in your shopping cart.

3. Managing Cookies
You can choose to disable cookies through your browser settings, but this may affect the functionality of the website.`
