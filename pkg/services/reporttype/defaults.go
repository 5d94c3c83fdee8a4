package reporttype

// Report types of the YouTube Analytics API. Order matters: entries are tried
// top to bottom. Playlist reports come last because they only differ from
// their channel counterparts by the isCurated filter.

var (
	timePeriods = []string{"day", "month"}

	coreMetrics = []string{
		"views", "redViews", "comments", "likes", "dislikes",
		"videosAddedToPlaylists", "videosRemovedFromPlaylists", "shares",
		"estimatedMinutesWatched", "estimatedRedMinutesWatched",
		"averageViewDuration", "averageViewPercentage",
		"annotationClickThroughRate", "annotationCloseRate", "annotationImpressions",
		"annotationClickableImpressions", "annotationClosableImpressions",
		"annotationClicks", "annotationCloses",
		"cardClickRate", "cardTeaserClickRate", "cardImpressions",
		"cardTeaserImpressions", "cardClicks", "cardTeaserClicks",
		"subscribersGained", "subscribersLost",
	}
	revenueMetrics = []string{
		"estimatedRevenue", "estimatedAdRevenue", "grossRevenue",
		"estimatedRedPartnerRevenue", "monetizedPlaybacks", "playbackBasedCpm",
		"adImpressions", "cpm",
	}
	subscribedStatusMetrics = []string{
		"views", "redViews", "estimatedMinutesWatched", "estimatedRedMinutesWatched",
		"averageViewDuration", "averageViewPercentage",
		"annotationClickThroughRate", "annotationCloseRate", "annotationImpressions",
		"annotationClickableImpressions", "annotationClosableImpressions",
		"annotationClicks", "annotationCloses",
		"cardClickRate", "cardTeaserClickRate", "cardImpressions",
		"cardTeaserImpressions", "cardClicks", "cardTeaserClicks",
	}
	viewMetrics = []string{
		"views", "redViews", "estimatedMinutesWatched", "estimatedRedMinutesWatched",
	}
	topVideoMetrics = []string{
		"views", "redViews", "estimatedMinutesWatched", "estimatedRedMinutesWatched",
		"averageViewDuration", "averageViewPercentage", "comments", "likes",
		"dislikes", "shares", "subscribersGained", "subscribersLost",
		"videosAddedToPlaylists", "videosRemovedFromPlaylists",
	}
	playlistMetrics = []string{
		"views", "redViews", "estimatedMinutesWatched", "estimatedRedMinutesWatched",
		"averageViewDuration", "playlistStarts", "viewsPerPlaylistStart",
		"averageTimeInPlaylist",
	}
	playlistViewMetrics = []string{
		"views", "redViews", "estimatedMinutesWatched", "estimatedRedMinutesWatched",
		"playlistStarts", "viewsPerPlaylistStart", "averageTimeInPlaylist",
	}
)

var (
	continents        = []string{"002", "019", "142", "150", "009"}
	subscribedStatus  = []string{"SUBSCRIBED", "UNSUBSCRIBED"}
	liveOrOnDemand    = []string{"LIVE", "ON_DEMAND"}
	audienceTypes     = []string{"ORGANIC", "AD_INSTREAM", "AD_INDISPLAY"}
	deviceTypes       = []string{"DESKTOP", "GAME_CONSOLE", "MOBILE", "TABLET", "TV", "UNKNOWN_PLATFORM"}
	trafficDetailKeys = []string{
		"ADVERTISING", "CAMPAIGN_CARD", "END_SCREEN", "EXT_URL", "HASHTAGS",
		"NOTIFICATION", "RELATED_VIDEO", "SOUND_PAGE", "SUBSCRIBER", "VIDEO_REMIXES",
		"YT_CHANNEL", "YT_OTHER_PAGE", "YT_SEARCH",
	}
	operatingSystems = []string{
		"ANDROID", "BADA", "BLACKBERRY", "CHROMECAST", "DOCOMO", "FIREFOX", "HIPTOP",
		"IOS", "KAIOS", "LINUX", "MACINTOSH", "MEEGO", "NINTENDO_3DS", "OTHER",
		"PLAYSTATION", "PLAYSTATION_VITA", "REALMEDIA", "SMART_TV", "SYMBIAN",
		"TIZEN", "WEBOS", "WII", "WINDOWS", "WINDOWS_MOBILE", "XBOX",
	}

	locationKeys        = []string{"country", "province", "continent", "subContinent"}
	contentKeys         = []string{"video", "group"}
	playlistContentKeys = []string{"playlist", "group"}
)

func locationFilters() []FilterRule {
	return []FilterRule{
		{Key: "country"},
		{Key: "province"},
		{Key: "continent", Values: continents},
		{Key: "subContinent"},
	}
}

func contentFilters() []FilterRule {
	return []FilterRule{{Key: "video"}, {Key: "group"}}
}

// channelFilters is the filter policy shared by most channel reports.
func channelFilters(extra ...FilterRule) FilterPolicy {
	allowed := append(locationFilters(), contentFilters()...)
	return FilterPolicy{
		Allowed:   append(allowed, extra...),
		Exclusive: [][]string{locationKeys, contentKeys},
	}
}

// playlistFilters requires isCurated==1 on top of the location and
// playlist/group filters.
func playlistFilters(extra ...FilterRule) FilterPolicy {
	allowed := append(locationFilters(),
		FilterRule{Key: "playlist"},
		FilterRule{Key: "group"},
		FilterRule{Key: "isCurated", Values: []string{"1"}, Required: true},
		FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
	)
	return FilterPolicy{
		Allowed:   append(allowed, extra...),
		Exclusive: [][]string{locationKeys, playlistContentKeys},
	}
}

func join(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func defaultTypes() []ReportType {
	return []ReportType{
		{
			ID:      "basic-user-activity",
			Name:    "Basic user activity",
			Metrics: join(coreMetrics, revenueMetrics),
			Filters: channelFilters(
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:      "time-based-activity",
			Name:    "Time-based activity",
			OneOf:   [][]string{timePeriods},
			Metrics: join(coreMetrics, revenueMetrics),
			Filters: channelFilters(
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "geography-based-activity",
			Name:     "Geography-based activity",
			Required: []string{"country"},
			Metrics:  join(coreMetrics, revenueMetrics),
			Filters: FilterPolicy{
				Allowed: []FilterRule{
					{Key: "continent", Values: continents},
					{Key: "subContinent"},
					{Key: "video"},
					{Key: "group"},
				},
				Exclusive: [][]string{{"continent", "subContinent"}, contentKeys},
			},
		},
		{
			ID:       "geography-based-activity-us",
			Name:     "Geography-based activity (US)",
			Required: []string{"province"},
			Metrics:  coreMetrics,
			Filters: FilterPolicy{
				Allowed: []FilterRule{
					{Key: "country", Values: []string{"US"}, Required: true},
					{Key: "video"},
					{Key: "group"},
				},
				Exclusive: [][]string{contentKeys},
			},
		},
		{
			ID:       "user-activity-by-subscribed-status",
			Name:     "User activity by subscribed status",
			Required: []string{"subscribedStatus"},
			Optional: [][]string{timePeriods},
			Metrics:  subscribedStatusMetrics,
			Filters:  channelFilters(),
		},
		{
			ID:       "playback-locations",
			Name:     "Playback locations",
			Required: []string{"insightPlaybackLocationType"},
			Optional: [][]string{{"day"}},
			Metrics:  viewMetrics,
			Filters: channelFilters(
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "playback-location-details",
			Name:     "Playback location details",
			Required: []string{"insightPlaybackLocationDetail"},
			Metrics:  viewMetrics,
			SortKeys: []string{"views", "estimatedMinutesWatched"},
			Filters: channelFilters(
				FilterRule{Key: "insightPlaybackLocationType", Values: []string{"EMBEDDED"}, Required: true},
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
			MaxResults:     25,
			DescendingSort: true,
		},
		{
			ID:       "traffic-sources",
			Name:     "Traffic sources",
			Required: []string{"insightTrafficSourceType"},
			Optional: [][]string{{"day"}},
			Metrics:  viewMetrics,
			Filters: channelFilters(
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "traffic-source-details",
			Name:     "Traffic source details",
			Required: []string{"insightTrafficSourceDetail"},
			Metrics:  viewMetrics,
			SortKeys: []string{"views", "estimatedMinutesWatched"},
			Filters: channelFilters(
				FilterRule{Key: "insightTrafficSourceType", Values: trafficDetailKeys, Required: true},
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
			MaxResults:     25,
			DescendingSort: true,
		},
		{
			ID:          "device-type",
			Name:        "Device type",
			Required:    []string{"deviceType"},
			Optional:    [][]string{{"operatingSystem"}, timePeriods},
			MaxOptional: 1,
			Metrics:     viewMetrics,
			Filters: channelFilters(
				FilterRule{Key: "operatingSystem", Values: operatingSystems},
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "operating-system",
			Name:     "Operating system",
			Required: []string{"operatingSystem"},
			Optional: [][]string{timePeriods},
			Metrics:  viewMetrics,
			Filters: channelFilters(
				FilterRule{Key: "deviceType", Values: deviceTypes},
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "viewer-demographics-by-age",
			Name:     "Viewer demographics by age group",
			Required: []string{"ageGroup"},
			Optional: [][]string{{"gender"}, {"subscribedStatus"}},
			Metrics:  []string{"viewerPercentage"},
			Filters: channelFilters(
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "viewer-demographics-by-gender",
			Name:     "Viewer demographics by gender",
			Required: []string{"gender"},
			Optional: [][]string{{"subscribedStatus"}},
			Metrics:  []string{"viewerPercentage"},
			Filters: channelFilters(
				FilterRule{Key: "liveOrOnDemand", Values: liveOrOnDemand},
				FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
			),
		},
		{
			ID:       "engagement-and-content-sharing",
			Name:     "Engagement and content sharing",
			Required: []string{"sharingService"},
			Optional: [][]string{{"subscribedStatus"}},
			Metrics:  []string{"shares"},
			Filters:  channelFilters(),
		},
		{
			ID:       "audience-retention",
			Name:     "Audience retention",
			Required: []string{"elapsedVideoTimeRatio"},
			Optional: [][]string{{"creatorContentType"}},
			Metrics:  []string{"audienceWatchRatio", "relativeRetentionPerformance"},
			Filters: FilterPolicy{
				Allowed: []FilterRule{
					{Key: "video", Required: true},
					{Key: "audienceType", Values: audienceTypes},
					{Key: "subscribedStatus", Values: subscribedStatus},
					{Key: "youtubeProduct"},
				},
			},
		},
		{
			ID:       "top-videos",
			Name:     "Top videos",
			Required: []string{"video"},
			Metrics:  join(topVideoMetrics, revenueMetrics),
			SortKeys: []string{
				"views", "redViews", "estimatedMinutesWatched", "estimatedRedMinutesWatched",
				"averageViewDuration", "comments", "likes", "dislikes", "shares",
				"subscribersGained", "subscribersLost", "estimatedRevenue",
			},
			Filters: FilterPolicy{
				Allowed: append(locationFilters(),
					FilterRule{Key: "subscribedStatus", Values: subscribedStatus}),
				Exclusive: [][]string{locationKeys},
			},
			MaxResults:     200,
			DescendingSort: true,
		},
		{
			ID:      "playlist-basic-stats",
			Name:    "Basic stats for playlists",
			Metrics: playlistMetrics,
			Filters: playlistFilters(),
		},
		{
			ID:      "playlist-time-based",
			Name:    "Time-based playlist activity",
			OneOf:   [][]string{timePeriods},
			Metrics: playlistMetrics,
			Filters: playlistFilters(),
		},
		{
			ID:       "playlist-geography-based",
			Name:     "Geography-based playlist activity",
			Required: []string{"country"},
			Metrics:  playlistMetrics,
			Filters:  playlistFilters(),
		},
		{
			ID:       "playlist-playback-locations",
			Name:     "Playback locations for playlists",
			Required: []string{"insightPlaybackLocationType"},
			Optional: [][]string{{"day"}},
			Metrics:  playlistViewMetrics,
			Filters:  playlistFilters(),
		},
		{
			ID:       "playlist-traffic-sources",
			Name:     "Traffic sources for playlists",
			Required: []string{"insightTrafficSourceType"},
			Optional: [][]string{{"day"}},
			Metrics:  playlistViewMetrics,
			Filters:  playlistFilters(),
		},
		{
			ID:          "playlist-device-type",
			Name:        "Device type for playlists",
			Required:    []string{"deviceType"},
			Optional:    [][]string{{"operatingSystem"}, timePeriods},
			MaxOptional: 1,
			Metrics:     playlistViewMetrics,
			Filters:     playlistFilters(FilterRule{Key: "operatingSystem", Values: operatingSystems}),
		},
		{
			ID:       "top-playlists",
			Name:     "Top playlists",
			Required: []string{"playlist"},
			Metrics:  playlistMetrics,
			SortKeys: []string{
				"views", "estimatedMinutesWatched", "playlistStarts", "averageTimeInPlaylist",
			},
			Filters: FilterPolicy{
				Allowed: append(locationFilters(),
					FilterRule{Key: "isCurated", Values: []string{"1"}, Required: true},
					FilterRule{Key: "subscribedStatus", Values: subscribedStatus},
				),
				Exclusive: [][]string{locationKeys},
			},
			MaxResults:     200,
			DescendingSort: true,
		},
	}
}
