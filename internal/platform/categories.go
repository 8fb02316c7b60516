package platform

// builtinCategories lists the category vocabulary of each platform that publishes
// into a fixed taxonomy. Order matters: earlier entries win ties during matching.
func builtinCategories() map[string][]string {
	return map[string][]string{
		"amazon": {
			"Electronics",
			"Computers & Accessories",
			"Cell Phones & Accessories",
			"Clothing, Shoes & Jewelry",
			"Home & Kitchen",
			"Books",
			"Toys & Games",
			"Sports & Outdoors",
			"Beauty & Personal Care",
			"Health & Household",
			"Automotive",
			"Pet Supplies",
			"Office Products",
			"Tools & Home Improvement",
			"Garden & Outdoor",
			"Baby",
		},
		"ebay": {
			"Consumer Electronics",
			"Cell Phones & Accessories",
			"Computers/Tablets & Networking",
			"Clothing, Shoes & Accessories",
			"Home & Garden",
			"Jewelry & Watches",
			"Toys & Hobbies",
			"Sporting Goods",
			"Health & Beauty",
			"eBay Motors",
			"Pet Supplies",
			"Books & Magazines",
			"Collectibles",
			"Baby",
		},
		"etsy": {
			"Accessories",
			"Art & Collectibles",
			"Bags & Purses",
			"Bath & Beauty",
			"Books, Movies & Music",
			"Clothing",
			"Craft Supplies & Tools",
			"Electronics & Accessories",
			"Home & Living",
			"Jewelry",
			"Paper & Party Supplies",
			"Pet Supplies",
			"Shoes",
			"Toys & Games",
			"Weddings",
		},
		"cdiscount": {
			"Informatique",
			"Telephonie",
			"Electromenager",
			"Maison",
			"Jardin",
			"Bricolage",
			"Jouets",
			"Mode",
			"Chaussures",
			"Beaute",
			"Sport",
			"Auto Moto",
			"Animalerie",
			"Bebe",
		},
		"google_shopping": {
			"Apparel & Accessories",
			"Electronics",
			"Home & Garden",
			"Health & Beauty",
			"Sporting Goods",
			"Toys & Games",
			"Vehicles & Parts",
			"Animals & Pet Supplies",
			"Baby & Toddler",
			"Office Supplies",
			"Hardware",
			"Media",
		},
		"facebook": {
			"Clothing & Accessories",
			"Electronics",
			"Home",
			"Health & Beauty",
			"Sporting Goods",
			"Toys & Games",
			"Pet Supplies",
			"Baby Products",
		},
		"tiktok": {
			"Womenswear & Underwear",
			"Menswear & Underwear",
			"Phones & Electronics",
			"Computers & Office Equipment",
			"Home Supplies",
			"Kitchenware",
			"Beauty & Personal Care",
			"Sports & Outdoor",
			"Toys & Hobbies",
			"Pet Supplies",
			"Baby & Maternity",
			"Automotive & Motorcycle",
		},
		"aliexpress": {
			"Consumer Electronics",
			"Phones & Telecommunications",
			"Computer & Office",
			"Home & Garden",
			"Home Improvement",
			"Women's Clothing",
			"Men's Clothing",
			"Jewelry & Accessories",
			"Beauty & Health",
			"Toys & Hobbies",
			"Sports & Entertainment",
			"Automobiles & Motorcycles",
			"Mother & Kids",
		},
		"prestashop": {
			"Accueil",
			"Vetements",
			"Accessoires",
			"Art",
			"Maison",
			"Electronique",
		},
	}
}
