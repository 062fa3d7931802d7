package templates

const inviteTmpl = `
<div>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Hey {{Name}},
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Good news! {{Company}} just invited you to take part in their campaign:
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		<table border="0" cellpadding="20" cellspacing="0" width="600" style="font-size:14px;">
		<tr>
			<th align="left">Campaign:</th>
			<th align="left">Budget:</th>
			<th align="left">Runs:</th>
		</tr>
		<tr>
			<td align="left" valign="middle">{{CampaignName}}</td>
			<td align="left" valign="middle">${{Budget}}</td>
			<td align="left" valign="middle">{{StartDate}} to {{EndDate}}</td>
		</tr>
		</table>
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Sign in to your Trendlink account to review the details and accept the invitation.
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		All the best,<br/>
		~ The Trendlink Team<br/>
	</p>
</div>
`

var InviteEmail = MustacheMust(inviteTmpl)
