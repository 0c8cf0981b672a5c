package store

// Collection keys. Each names exactly one persisted collection.
const (
	KeyProducts           = "products"
	KeyCart               = "cart"
	KeyWishlist           = "wishlist"
	KeyRecentlyViewed     = "recentlyViewed"
	KeyOrders             = "orders"
	KeyUsers              = "users"
	KeySuppliers          = "suppliers"
	KeyInvoices           = "invoices"
	KeyPaymentMethods     = "paymentMethods"
	KeyEmailTemplates     = "emailTemplates"
	KeyCurrentUser        = "currentUser"
	KeyPurchaseOrders     = "purchaseOrders"
	KeyInfoBannerConfig   = "infoBannerConfig"
	KeyPopupConfigs       = "popupConfigs"
	KeyMenuConfig         = "menuConfig"
	KeyMarketingCampaigns = "marketingCampaigns"
	KeyProspects          = "prospects"
	KeyTestimonials       = "testimonials"
	KeyHomeCategories     = "homeCategories"
	KeySiteConfig         = "siteConfig"
	KeyPagesContent       = "pagesContent"
	KeyCookiePreferences  = "cookiePreferences"
)

// Keys lists every collection key in a fixed order.
var Keys = []string{
	KeyProducts,
	KeyCart,
	KeyWishlist,
	KeyRecentlyViewed,
	KeyOrders,
	KeyUsers,
	KeySuppliers,
	KeyInvoices,
	KeyPaymentMethods,
	KeyEmailTemplates,
	KeyCurrentUser,
	KeyPurchaseOrders,
	KeyInfoBannerConfig,
	KeyPopupConfigs,
	KeyMenuConfig,
	KeyMarketingCampaigns,
	KeyProspects,
	KeyTestimonials,
	KeyHomeCategories,
	KeySiteConfig,
	KeyPagesContent,
	KeyCookiePreferences,
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
