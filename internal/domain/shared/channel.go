package shared

// Channel identifies one of the four source systems feeding the warehouse.
type Channel string

const (
	ChannelLazada Channel = "lazada"
	ChannelShopee Channel = "shopee"
	ChannelTiktok Channel = "tiktok"
	ChannelPOS    Channel = "pos"
)

// AllChannels returns every registered channel in load order.
func AllChannels() []Channel {
	return []Channel{ChannelLazada, ChannelShopee, ChannelTiktok, ChannelPOS}
}

// MarketplaceChannels returns the channels that use the order/refund schema.
// The point-of-sale channel uses receipts and inventory movements instead.
func MarketplaceChannels() []Channel {
	return []Channel{ChannelLazada, ChannelShopee, ChannelTiktok}
}

// IsMarketplace returns true for the three marketplace channels.
func (c Channel) IsMarketplace() bool {
	return c != ChannelPOS
}

// IsValid returns true if the channel is one of the four known sources.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelLazada, ChannelShopee, ChannelTiktok, ChannelPOS:
		return true
	}
	return false
}

// String returns the channel name.
func (c Channel) String() string {
	return string(c)
}
