// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package labels

import "sync"

// typeAliases lists the accepted spellings of each clothing type.
// Entries are normalized with NormalizeKey when the lookup table is built.
var typeAliases = map[ClothingType][]string{
	Outerwear: {
		"アウター", "outer", "outerwear", "coat", "jacket", "blouson", "down",
		"コート", "ジャケット", "ブルゾン", "ダウン", "羽織", "ベスト", "vest",
	},
	Tops: {
		"トップス", "tops", "top", "upper", "shirt", "t-shirt", "cutsew", "knit",
		"sweater", "hoodie", "parka", "sweat", "シャツ", "ブラウス", "カットソー",
		"ニット", "セーター", "パーカー", "スウェット", "トレーナー", "tシャツ",
	},
	Bottoms: {
		"ボトムス", "bottoms", "bottom", "pants", "trousers", "skirt", "denim",
		"jeans", "パンツ", "ズボン", "スカート", "デニム", "ジーンズ", "スラックス",
	},
	Shoes: {
		"シューズ", "shoes", "shoe", "sneaker", "boots", "pumps", "sandals",
		"loafer", "靴", "スニーカー", "パンプス", "サンダル", "ブーツ", "ローファー", "革靴",
	},
	Accessories: {
		"アクセサリー", "アクセ", "accessory", "accessories", "goods", "bag", "hat",
		"cap", "scarf", "muffler", "stole", "belt", "小物", "バッグ", "鞄", "帽子",
		"ハット", "キャップ", "マフラー", "ストール", "ベルト", "眼鏡", "メガネ",
	},
}

var (
	aliasOnce  sync.Once
	aliasTable map[string]ClothingType
)

func aliasLookup() map[string]ClothingType {
	aliasOnce.Do(func() {
		aliasTable = make(map[string]ClothingType, 96)
		for _, t := range allTypes {
			for _, alias := range typeAliases[t] {
				aliasTable[NormalizeKey(alias)] = t
			}
		}
	})
	return aliasTable
}

// CanonType maps a user-supplied type string to a ClothingType.
// Lookup is by NormalizeKey, so width variants ("ﾎﾞﾄﾑｽ"), case and inner
// whitespace ("T シャツ") are tolerated. ok is false when nothing matches.
func CanonType(raw string) (t ClothingType, ok bool) {
	t, ok = aliasLookup()[NormalizeKey(raw)]
	return t, ok
}
