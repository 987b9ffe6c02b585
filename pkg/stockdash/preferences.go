package stockdash

// GetPreferences returns the user's stored preferences.
func (c *Core) GetPreferences(userID int64) (UserPreferences, error) {
	prefs, ok, err := c.store.GetUserPreferences(userID)
	if err != nil {
		return UserPreferences{}, storeError("failed to fetch user preferences", err)
	}
	if !ok {
		return UserPreferences{}, notFound("user preferences")
	}
	return prefs, nil
}

// UpdatePreferences merges req into the user's preferences. Users without a
// record get one built from the defaults with req applied on top.
func (c *Core) UpdatePreferences(userID int64, req UpdatePreferencesRequest) (UserPreferences, error) {
	patch, err := validatePreferences(req)
	if err != nil {
		return UserPreferences{}, err
	}
	_, exists, err := c.store.GetUserPreferences(userID)
	if err != nil {
		return UserPreferences{}, storeError("failed to fetch user preferences", err)
	}
	if !exists {
		created, err := c.store.CreateUserPreferences(patch.apply(defaultPreferences(userID)))
		if err != nil {
			return UserPreferences{}, storeError("failed to create user preferences", err)
		}
		c.logger.Info("user preferences created", "user_id", userID)
		return created, nil
	}
	updated, ok, err := c.store.UpdateUserPreferences(userID, patch)
	if err != nil {
		return UserPreferences{}, storeError("failed to update user preferences", err)
	}
	if !ok {
		return UserPreferences{}, notFound("user preferences")
	}
	c.logger.Debug("user preferences updated", "user_id", userID)
	return updated, nil
}

func defaultPreferences(userID int64) UserPreferences {
	return UserPreferences{
		UserID:             userID,
		DefaultTimeframe:   DefaultTimeframe,
		Theme:              DefaultTheme,
		FavoriteIndicators: cloneStrings(DefaultFavoriteIndicators),
	}
}
